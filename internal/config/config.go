package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wicaksana/tokokasir/internal/hash"
	"github.com/wicaksana/tokokasir/internal/models"
)

type Config struct {
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	JWT_SECRET     string
	REFRESH_SECRET string
	KAFKA_ADDRESS  string
	HTTP_ADDR      string
	LOG_LEVEL      string
	OWNER_PASSWORD string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		HTTP_ADDR:      os.Getenv("HTTP_ADDR"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		OWNER_PASSWORD: os.Getenv("OWNER_PASSWORD"),
	}
	if config.HTTP_ADDR == "" {
		config.HTTP_ADDR = ":8080"
	}

	return config, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.RefreshToken{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// SeedDefaults creates the store profile and the owner account on
// first boot so the app is usable out of the box.
func SeedDefaults(db *gorm.DB, cfg *Config) error {
	var store models.Store
	if err := db.First(&store).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		store = models.Store{
			Name:    "Toko Kelontong Barokah",
			Address: "Jl. Mawar No. 123, Jakarta",
			Phone:   "021-12345678",
			Email:   "tokobarokah@email.com",
		}
		if err := db.Create(&store).Error; err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("seed store: %w", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := cfg.OWNER_PASSWORD
	if password == "" {
		password = "pemilik123"
	}
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}
	owner := models.User{
		Email:        "pemilik@toko.com",
		Name:         "Budi Pemilik",
		Phone:        "081987654321",
		Address:      "Jl. Anggrek No. 78",
		PasswordHash: pwHash,
		Role:         "pemilik",
	}
	if err := db.Create(&owner).Error; err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}
	return nil
}
