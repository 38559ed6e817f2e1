package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"eventhub_backend/internals/configs"
	eventModel "eventhub_backend/internals/features/events/model"
	paymentModel "eventhub_backend/internals/features/payments/model"
	registrationModel "eventhub_backend/internals/features/registrations/model"
	resultModel "eventhub_backend/internals/features/results/model"
	userModel "eventhub_backend/internals/features/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "disable")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=eventhub",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_HOST", "127.0.0.1"),
		getenv("DB_PORT", "5432"),
		getenv("DB_NAME", "college_events"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] DB connection failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate keeps the schema in sync with the models. The unique index on
// (student, event) lives on the registration model tags.
func Migrate() error {
	return DB.AutoMigrate(
		&userModel.UserModel{},
		&eventModel.EventModel{},
		&registrationModel.RegistrationModel{},
		&paymentModel.PaymentModel{},
		&resultModel.ResultModel{},
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
