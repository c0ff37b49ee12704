package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	HTTPPort string `env:"PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"password"`
	DBName     string `env:"DB_NAME" envDefault:"applymate"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Identity store (service of record for auth). The service key is only
	// used for the admin delete-user call, never forwarded to clients.
	IdentityURL        string        `env:"IDENTITY_URL" envDefault:"http://localhost:9999"`
	IdentityServiceKey string        `env:"IDENTITY_SERVICE_KEY"`
	IdentityTimeout    time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"10s"`

	// Blob store holding the uploaded resume documents.
	BlobEndpoint  string `env:"BLOB_ENDPOINT" envDefault:"localhost:9000"`
	BlobAccessKey string `env:"BLOB_ACCESS_KEY"`
	BlobSecretKey string `env:"BLOB_SECRET_KEY"`
	BlobBucket    string `env:"BLOB_BUCKET" envDefault:"resumes"`
	BlobUseSSL    bool   `env:"BLOB_USE_SSL" envDefault:"false"`
}

// DSN builds the postgres connection string from the DB_* variables.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
