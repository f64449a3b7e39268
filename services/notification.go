package services

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"google.golang.org/api/option"

	"splitledger-backend/config"
	"splitledger-backend/ledger"
	"splitledger-backend/models"
)

// Notifier delivers expense and settlement notifications over email
// (SendGrid) and push (FCM). Both channels degrade to log-only when their
// credentials are absent.
type Notifier struct {
	mail *sendgrid.Client
	push *messaging.Client
}

func NewNotifier(ctx context.Context) *Notifier {
	n := &Notifier{}

	if key := config.AppConfig.SendGridAPIKey; key != "" {
		n.mail = sendgrid.NewSendClient(key)
	} else {
		log.Println("⚠️  SendGrid API key not set, emails will be logged only")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
	if err == nil {
		if client, err := app.Messaging(ctx); err == nil {
			n.push = client
		}
	}
	if n.push == nil {
		log.Println("⚠️  Firebase credentials not available, push notifications disabled")
	}

	return n
}

func (n *Notifier) sendEmail(toEmail, toName, subject, body string) {
	if n.mail == nil {
		log.Printf("📧 [dry-run] to=%s subject=%q", toEmail, subject)
		return
	}

	from := sgmail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, body, "")

	resp, err := n.mail.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}
	if resp.StatusCode >= 300 {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

func (n *Notifier) sendPush(ctx context.Context, fcmToken, title, body string, data map[string]string) {
	if n.push == nil || fcmToken == "" {
		return
	}

	_, err := n.push.Send(ctx, &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		log.Printf("❌ Push send error: %v", err)
	}
}

// NotifyExpenseAdded tells every participant about a new expense: the payee
// gets a confirmation, everyone else their owed amount.
func (n *Notifier) NotifyExpenseAdded(ctx context.Context, expense models.Expense, users map[string]models.User) {
	if n == nil {
		return
	}
	subject := "New Expense Added"
	for _, p := range expense.Participants {
		user, ok := users[p.UserID.String()]
		if !ok {
			continue
		}

		var body string
		if p.UserID == expense.PayeeID {
			body = fmt.Sprintf("You created a new expense. Amount paid = %s", expense.Amount())
		} else {
			body = fmt.Sprintf("You have been added to a new expense. Total amount owed: %s", ledger.Money(p.AmountMinor))
		}

		n.sendEmail(user.Email, user.Name, subject, body)
		n.sendPush(ctx, user.FCMToken, subject, body, map[string]string{
			"type":       "expense_added",
			"expense_id": expense.ID.String(),
		})
	}
}

// NotifySettlement tells the recipient a payment was recorded.
func (n *Notifier) NotifySettlement(ctx context.Context, settlement models.Settlement, payer, payee models.User) {
	if n == nil {
		return
	}
	subject := "Payment Recorded"
	body := fmt.Sprintf("%s paid you %s", payer.Name, ledger.Money(settlement.AmountMinor))

	n.sendEmail(payee.Email, payee.Name, subject, body)
	n.sendPush(ctx, payee.FCMToken, subject, body, map[string]string{
		"type":          "settlement",
		"settlement_id": settlement.ID.String(),
	})
}

// SendSummary emails one user their periodic amounts-owed digest.
func (n *Notifier) SendSummary(user models.User, body string) {
	if n == nil {
		return
	}
	n.sendEmail(user.Email, user.Name, "Weekly Summary: Amounts Owed", body)
}
