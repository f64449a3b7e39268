package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Strategy selects how participant contributions are interpreted when an
// expense is divided.
type Strategy string

const (
	// StrategyEqual divides the amount evenly; contributions are ignored.
	StrategyEqual Strategy = "EQUAL"
	// StrategyExact takes each contribution verbatim as the owed amount.
	StrategyExact Strategy = "EXACT"
	// StrategyPercent treats each contribution as a percentage of the amount.
	StrategyPercent Strategy = "PERCENT"
	// StrategyWeight divides the amount proportionally to contribution weights.
	StrategyWeight Strategy = "WEIGHT"
)

// ParseStrategy normalizes a request-level split type string.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToUpper(strings.TrimSpace(s))); st {
	case StrategyEqual, StrategyExact, StrategyPercent, StrategyWeight:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown split type %q", ErrInvalidSplit, s)
	}
}

// Participant is one party to an expense. Contribution is ignored for EQUAL,
// an absolute amount for EXACT, a percentage for PERCENT and a relative
// weight for WEIGHT.
type Participant struct {
	UserID       string
	Contribution decimal.Decimal
}

// Share is a participant's computed owed amount.
type Share struct {
	UserID string
	Amount Money
}

// ComputeShares divides amount among participants according to strategy.
// It is a pure function: identical input always yields identical output,
// and shares are produced in participant input order.
func ComputeShares(amount Money, strategy Strategy, participants []Participant) ([]Share, error) {
	if len(participants) == 0 {
		return nil, ErrEmptyParticipants
	}
	if amount < 0 || amount > MaxAmount {
		return nil, fmt.Errorf("%w: amount %s out of range [0, %s]", ErrInvalidSplit, amount, MaxAmount)
	}

	switch strategy {
	case StrategyEqual:
		return equalShares(amount, participants), nil
	case StrategyExact:
		return exactShares(amount, participants)
	case StrategyPercent:
		return percentShares(amount, participants)
	case StrategyWeight:
		return weightShares(amount, participants)
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrInvalidSplit, strategy)
	}
}

// equalShares hands out base = floor(amount/n) to everyone and one extra
// minor unit to the first remainder participants, so the shares always sum
// to amount exactly.
func equalShares(amount Money, participants []Participant) []Share {
	n := Money(len(participants))
	base := amount / n
	remainder := amount - base*n

	shares := make([]Share, 0, len(participants))
	for i, p := range participants {
		share := base
		if Money(i) < remainder {
			share++
		}
		shares = append(shares, Share{UserID: p.UserID, Amount: share})
	}
	return shares
}

func exactShares(amount Money, participants []Participant) ([]Share, error) {
	shares := make([]Share, 0, len(participants))
	var total Money
	for _, p := range participants {
		if p.Contribution.IsNegative() {
			return nil, fmt.Errorf("%w: negative contribution %s for user %s", ErrInvalidSplit, p.Contribution, p.UserID)
		}
		owed, err := MoneyFromDecimal(p.Contribution)
		if err != nil {
			return nil, err
		}
		total += owed
		shares = append(shares, Share{UserID: p.UserID, Amount: owed})
	}
	if total != amount {
		return nil, fmt.Errorf("%w: contributions sum to %s, expense amount is %s", ErrInvalidSplit, total, amount)
	}
	return shares, nil
}

func percentShares(amount Money, participants []Participant) ([]Share, error) {
	totalPercent := decimal.Zero
	exact := make([]decimal.Decimal, 0, len(participants))
	for _, p := range participants {
		if p.Contribution.IsNegative() {
			return nil, fmt.Errorf("%w: negative percentage %s for user %s", ErrInvalidSplit, p.Contribution, p.UserID)
		}
		totalPercent = totalPercent.Add(p.Contribution)
		exact = append(exact, decimal.NewFromInt(int64(amount)).Mul(p.Contribution).Div(hundred))
	}
	if totalPercent.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: got %s", ErrPercentOverflow, totalPercent)
	}

	// A total below 100 leaves part of the amount unassigned. Accepted:
	// the shares cover amount*totalPercent/100, not the full amount.
	covered := decimal.NewFromInt(int64(amount)).Mul(totalPercent).Div(hundred).Round(0)
	return apportion(participants, exact, Money(covered.IntPart())), nil
}

func weightShares(amount Money, participants []Participant) ([]Share, error) {
	totalWeight := decimal.Zero
	for _, p := range participants {
		if !p.Contribution.IsPositive() {
			return nil, fmt.Errorf("%w: weight must be > 0, got %s for user %s", ErrInvalidSplit, p.Contribution, p.UserID)
		}
		totalWeight = totalWeight.Add(p.Contribution)
	}
	if totalWeight.IsZero() {
		return nil, fmt.Errorf("%w: total weight is zero", ErrInvalidSplit)
	}

	exact := make([]decimal.Decimal, 0, len(participants))
	for _, p := range participants {
		exact = append(exact, decimal.NewFromInt(int64(amount)).Mul(p.Contribution).Div(totalWeight))
	}
	return apportion(participants, exact, amount), nil
}

// apportion turns exact fractional minor-unit shares into whole minor units
// that sum to target exactly: floor every share, then hand the leftover
// units to the largest fractional remainders, ties broken by input order.
// Rounding each share independently would let per-share errors accumulate
// past the one-minor-unit tolerance.
func apportion(participants []Participant, exact []decimal.Decimal, target Money) []Share {
	shares := make([]Share, len(participants))
	remainders := make([]decimal.Decimal, len(exact))
	order := make([]int, len(exact))
	var floored Money
	for i, e := range exact {
		f := e.Floor()
		shares[i] = Share{UserID: participants[i].UserID, Amount: Money(f.IntPart())}
		remainders[i] = e.Sub(f)
		order[i] = i
		floored += Money(f.IntPart())
	}

	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	leftover := target - floored
	for k := 0; k < len(order) && leftover > 0; k++ {
		shares[order[k]].Amount++
		leftover--
	}
	return shares
}
