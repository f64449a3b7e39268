package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"splitledger-backend/config"
	"splitledger-backend/models"
)

// Connect opens the Postgres connection and migrates the schema. The handle
// is returned, not stored globally: everything that needs storage receives
// it explicitly.
func Connect() *gorm.DB {
	db, err := gorm.Open(postgres.Open(config.AppConfig.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("✅ Database connected successfully")

	err = db.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.ExpenseParticipant{},
		&models.LedgerEdge{},
		&models.Settlement{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database migrated successfully")
	return db
}
