package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/models"
)

type Config struct {
	APP_ADDR         string
	DB_TYPE          string
	DB_HOST          string
	DB_PORT          string
	DB_USER          string
	DB_PASSWORD      string
	DB_NAME          string
	DB_PATH          string
	ES_URL           string
	ES_USER          string
	ES_PASSWORD      string
	KAFKA_ADDRESS    string
	JWT_SECRET       string
	ADMIN_USERNAME   string
	ADMIN_PASSWORD   string
	UPLOAD_DIR       string
	UPLOAD_MAX_BYTES int64
	UPLOAD_MAX_FILES int
	LOG_LEVEL        string

	// console side
	API_URL       string
	CONSOLE_STATE string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		APP_ADDR:         getenv("APP_ADDR", ":8080"),
		DB_TYPE:          getenv("DB_TYPE", "postgres"),
		DB_HOST:          os.Getenv("DB_HOST"),
		DB_PORT:          os.Getenv("DB_PORT"),
		DB_USER:          os.Getenv("DB_USER"),
		DB_PASSWORD:      os.Getenv("DB_PASSWORD"),
		DB_NAME:          os.Getenv("DB_NAME"),
		DB_PATH:          getenv("DB_PATH", "bakehouse.db"),
		ES_URL:           os.Getenv("ES_URL"),
		ES_USER:          os.Getenv("ES_USER"),
		ES_PASSWORD:      os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS:    os.Getenv("KAFKA_ADDRESS"),
		JWT_SECRET:       getenv("JWT_SECRET", "dev-secret-change-me"),
		ADMIN_USERNAME:   os.Getenv("ADMIN_USERNAME"),
		ADMIN_PASSWORD:   os.Getenv("ADMIN_PASSWORD"),
		UPLOAD_DIR:       getenv("UPLOAD_DIR", "uploads"),
		UPLOAD_MAX_BYTES: getenvInt64("UPLOAD_MAX_BYTES", 5<<20),
		UPLOAD_MAX_FILES: int(getenvInt64("UPLOAD_MAX_FILES", 5)),
		LOG_LEVEL:        getenv("LOG_LEVEL", "info"),
		API_URL:          getenv("BAKEHOUSE_API_URL", "http://localhost:8080"),
		CONSOLE_STATE:    getenv("CONSOLE_STATE", defaultStatePath()),
	}

	return config, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "console.db"
	}
	return filepath.Join(home, ".bakehouse", "console.db")
}

func InitDB(configuration *Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	switch configuration.DB_TYPE {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(configuration.DB_PATH), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			configuration.DB_USER, configuration.DB_PASSWORD,
			configuration.DB_HOST, configuration.DB_PORT, configuration.DB_NAME,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Inquiry{},
		&models.Attachment{},
		&models.Review{},
		&models.AdminUser{},
	)
}
