package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tskauto/dealership-api/models"
	"github.com/tskauto/dealership-api/storage"
)

type Config struct {
	Port             string
	DatabaseURL      string
	SQLitePath       string
	JWTSecret        string
	JWTRefreshSecret string
	HistoryKey       string
	LogLevel         string
	LogFormat        string

	Company CompanyInfo
	Bank    BankInfo
}

// CompanyInfo appears on every rendered invoice.
type CompanyInfo struct {
	Name     string
	Tagline  string
	Address1 string
	Address2 string
	Phone    string
	Email    string
	VATNo    string
}

// BankInfo is the payment block printed on invoices and emailed to
// customers.
type BankInfo struct {
	Name          string
	AccountNumber string
	HolderName    string
	BranchNumber  string
	SwiftCode     string
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	return &Config{
		Port:             os.Getenv("PORT"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SQLitePath:       getEnvOrDefault("SQLITE_PATH", "dealership.db"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		HistoryKey:       getEnvOrDefault("HISTORY_KEY", "invoiceHistory"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        getEnvOrDefault("LOG_FORMAT", "console"),
		Company: CompanyInfo{
			Name:     getEnvOrDefault("COMPANY_NAME", "TSK AUTO"),
			Tagline:  getEnvOrDefault("COMPANY_TAGLINE", "Vehicle Trading Specialists"),
			Address1: getEnvOrDefault("COMPANY_ADDRESS1", "278 Weltevreden Road, Blackheath, Johannesburg"),
			Address2: getEnvOrDefault("COMPANY_ADDRESS2", "Gauteng, South Africa, 2001"),
			Phone:    getEnvOrDefault("COMPANY_PHONE", "+27 67 187 2085"),
			Email:    getEnvOrDefault("COMPANY_EMAIL", "Tskauto@gmail.com"),
			VATNo:    getEnvOrDefault("COMPANY_VAT_NO", "4850123456"),
		},
		Bank: BankInfo{
			Name:          getEnvOrDefault("BANK_NAME", "FNB"),
			AccountNumber: getEnvOrDefault("BANK_ACCOUNT_NUMBER", "63193229482"),
			HolderName:    getEnvOrDefault("BANK_ACCOUNT_HOLDER", "TSK Auto"),
			BranchNumber:  getEnvOrDefault("BANK_BRANCH_NUMBER", "250655"),
			SwiftCode:     getEnvOrDefault("BANK_SWIFT_CODE", "FIRNZAJJ"),
		},
	}, nil
}

// InitDB opens postgres when DATABASE_URL is set, otherwise a local sqlite
// file, and migrates the schema.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &storage.Blob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
