package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mail     MailConfig
	Auth     AuthConfig
	Order    OrderConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        int
	Env         string
	FrontendURL string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	SalesEmail string
}

type AuthConfig struct {
	JWTSecret             string
	TokenTTL              time.Duration
	CodeTTL               time.Duration
	AdminRegistrationCode string
}

type OrderConfig struct {
	// Location defines the calendar day for order-number sequencing.
	Location          *time.Location
	TempDir           string
	MaxSubmitAttempts int
	DailyLimit        int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "kingflex")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "kingflex")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("EMAIL_FROM", "orders@kingflex.com")
	viper.SetDefault("SALES_EMAIL", "sales@kingflex.com")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("VERIFICATION_CODE_TTL", "1h")
	viper.SetDefault("ADMIN_REGISTRATION_CODE", "")
	viper.SetDefault("ORDER_TIMEZONE", "Local")
	viper.SetDefault("ORDER_TEMP_DIR", "temp")
	viper.SetDefault("ORDER_MAX_SUBMIT_ATTEMPTS", 1)
	viper.SetDefault("ORDER_DAILY_LIMIT", 5)
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	tokenTTL, err := time.ParseDuration(viper.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing TOKEN_TTL: %w", err)
	}

	codeTTL, err := time.ParseDuration(viper.GetString("VERIFICATION_CODE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing VERIFICATION_CODE_TTL: %w", err)
	}

	loc, err := time.LoadLocation(viper.GetString("ORDER_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("loading ORDER_TIMEZONE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        viper.GetInt("SERVER_PORT"),
			Env:         viper.GetString("APP_ENV"),
			FrontendURL: viper.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Mail: MailConfig{
			Host:       viper.GetString("SMTP_HOST"),
			Port:       viper.GetInt("SMTP_PORT"),
			Username:   viper.GetString("SMTP_USERNAME"),
			Password:   viper.GetString("SMTP_PASSWORD"),
			From:       viper.GetString("EMAIL_FROM"),
			SalesEmail: viper.GetString("SALES_EMAIL"),
		},
		Auth: AuthConfig{
			JWTSecret:             viper.GetString("JWT_SECRET"),
			TokenTTL:              tokenTTL,
			CodeTTL:               codeTTL,
			AdminRegistrationCode: viper.GetString("ADMIN_REGISTRATION_CODE"),
		},
		Order: OrderConfig{
			Location:          loc,
			TempDir:           viper.GetString("ORDER_TEMP_DIR"),
			MaxSubmitAttempts: viper.GetInt("ORDER_MAX_SUBMIT_ATTEMPTS"),
			DailyLimit:        viper.GetInt("ORDER_DAILY_LIMIT"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
