package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Gemini API key for the optional intent classifier.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Voice bot settings.
	CompanyName              string `mapstructure:"COMPANY_NAME"`
	DefaultLanguage          string `mapstructure:"DEFAULT_LANGUAGE"`
	SessionTTLSeconds        int    `mapstructure:"SESSION_TTL_SECONDS"`
	RetryEscalationLimit     int    `mapstructure:"RETRY_ESCALATION_LIMIT"`
	FallbackSweepMaxAgeMin   int    `mapstructure:"FALLBACK_SWEEP_MAX_AGE_MIN"`
	FallbackSweepIntervalMin int    `mapstructure:"FALLBACK_SWEEP_INTERVAL_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("COMPANY_NAME", "Your Company")
	viper.SetDefault("DEFAULT_LANGUAGE", "english")
	viper.SetDefault("SESSION_TTL_SECONDS", 3600)
	viper.SetDefault("RETRY_ESCALATION_LIMIT", 2)
	viper.SetDefault("FALLBACK_SWEEP_MAX_AGE_MIN", 60)
	viper.SetDefault("FALLBACK_SWEEP_INTERVAL_MIN", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
