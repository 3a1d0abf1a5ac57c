package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	MongoURI      string
	Database      string
	JWTSecret     string
	UploadDir     string
	CloudinaryURL string
	SMTP          SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local development.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MONGODB_URI", "mongodb://127.0.0.1:27017")
	viper.SetDefault("MONGODB_DATABASE", "delish")
	viper.SetDefault("UPLOAD_DIR", "./public/uploads")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "noreply@delish.local")
	viper.AutomaticEnv()

	cfg := &Config{
		Port:          viper.GetString("PORT"),
		MongoURI:      viper.GetString("MONGODB_URI"),
		Database:      viper.GetString("MONGODB_DATABASE"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		UploadDir:     viper.GetString("UPLOAD_DIR"),
		CloudinaryURL: viper.GetString("CLOUDINARY_URL"),
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("SMTP_FROM"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}
