package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Payment  PaymentConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// PaymentConfig carries the processor credentials. KeySecret signs the
// per-payment redirect signature; WebhookSecret signs raw webhook bodies.
// They are distinct secrets and never interchangeable.
type PaymentConfig struct {
	KeyID               string
	KeySecret           string
	WebhookSecret       string
	Currency            string
	PollIntervalSeconds int
	PollMaxAttempts     int
}

type BookingConfig struct {
	TTLMinutes           int
	PurgeIntervalMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAYMENT_CURRENCY", "INR")
	viper.SetDefault("POLL_INTERVAL_SECONDS", 10)
	viper.SetDefault("POLL_MAX_ATTEMPTS", 30)
	viper.SetDefault("BOOKING_TTL_MINUTES", 1440)
	viper.SetDefault("BOOKING_PURGE_INTERVAL_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Payment: PaymentConfig{
			KeyID:               viper.GetString("RAZORPAY_KEY_ID"),
			KeySecret:           viper.GetString("RAZORPAY_KEY_SECRET"),
			WebhookSecret:       viper.GetString("RAZORPAY_WEBHOOK_SECRET"),
			Currency:            viper.GetString("PAYMENT_CURRENCY"),
			PollIntervalSeconds: viper.GetInt("POLL_INTERVAL_SECONDS"),
			PollMaxAttempts:     viper.GetInt("POLL_MAX_ATTEMPTS"),
		},
		Booking: BookingConfig{
			TTLMinutes:           viper.GetInt("BOOKING_TTL_MINUTES"),
			PurgeIntervalMinutes: viper.GetInt("BOOKING_PURGE_INTERVAL_MINUTES"),
		},
	}

	return config, nil
}
