package configs

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds server and admin-auth settings
type AppConfig struct {
	Port              string
	JWTSecret         string
	JWTExpire         time.Duration
	AdminEmail        string
	AdminPasswordHash string
}

// PostgresConfig holds the database connection settings
type PostgresConfig struct {
	URL      string
	User     string
	Password string
	Host     string
	Port     string
	DB       string
}

// KafkaConfig holds the audit event stream settings
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config holds all configuration values
type Config struct {
	App            AppConfig
	StorageBackend string // "memory" or "postgres"
	Postgres       PostgresConfig
	RedisURL       string
	Kafka          KafkaConfig
}

// Load loads configuration from the .env file, the environment and
// defaults. It returns a fresh value each call; the app threads it
// through explicitly instead of keeping a package singleton.
func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("ELECTION_PORT", "8080")
	viper.SetDefault("ELECTION_JWT_SECRET", "secret")
	viper.SetDefault("ELECTION_JWT_EXPIRE", "24h")
	viper.SetDefault("ADMIN_EMAIL", "admin@example.edu")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "password")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("POSTGRES_DB", "elections")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "election-events")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Error reading .env file: %v", err)
		log.Printf("Using environment variables and defaults")
	}

	expire, err := time.ParseDuration(viper.GetString("ELECTION_JWT_EXPIRE"))
	if err != nil {
		log.Fatal("Invalid ELECTION_JWT_EXPIRE format")
	}

	var brokers []string
	if raw := viper.GetString("KAFKA_BROKERS"); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			brokers = append(brokers, strings.TrimSpace(broker))
		}
	}

	return &Config{
		App: AppConfig{
			Port:              viper.GetString("ELECTION_PORT"),
			JWTSecret:         viper.GetString("ELECTION_JWT_SECRET"),
			JWTExpire:         expire,
			AdminEmail:        viper.GetString("ADMIN_EMAIL"),
			AdminPasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
		},
		StorageBackend: viper.GetString("STORAGE_BACKEND"),
		Postgres: PostgresConfig{
			URL:      viper.GetString("DATABASE_URL"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetString("POSTGRES_PORT"),
			DB:       viper.GetString("POSTGRES_DB"),
		},
		RedisURL: viper.GetString("REDIS_URL"),
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
	}
}
