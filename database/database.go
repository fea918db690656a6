package database

import (
	"fmt"
	"os"
	"strconv"

	"earnbot/logger"
	"earnbot/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, pass, name, port, sslmode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	DB = db
	logger.Info("connected to database")

	autoMigrateEnv := os.Getenv("DB_AUTO_MIGRATE")
	autoMigrate, err := strconv.ParseBool(autoMigrateEnv)
	if err != nil {
		logger.Warn("invalid value for DB_AUTO_MIGRATE", zap.String("value", autoMigrateEnv))
	}

	if autoMigrate {
		if err := Migrate(DB); err != nil {
			logger.Fatal("failed to auto-migrate database", zap.Error(err))
		}
		logger.Info("auto migration completed")
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Channel{},
		&models.Referral{},
		&models.GiftCode{},
		&models.GiftClaim{},
		&models.Withdrawal{},
		&models.Setting{},
	)
}
