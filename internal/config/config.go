// Package config loads service settings from the environment. A .env.dev file
// is read first when present; real environment variables always win.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const EnvDevelopment = "development"

type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"production"`
	AppPort string `env:"APP_PORT" envDefault:"8001"`

	DB   DBConfig  `envPrefix:"DB_"`
	JWT  JWTConfig `envPrefix:"JWT_"`
	S3   S3Config
	Otel OtelConfig

	NatsURL string `env:"NATS_URL"`
}

type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"postgres"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type JWTConfig struct {
	Secret    string        `env:"SECRET,required,notEmpty"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"24h"`
}

type S3Config struct {
	Endpoint        string `env:"S3_ENDPOINT"`
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	BucketName      string `env:"S3_BUCKET_NAME"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
}

type OtelConfig struct {
	Enabled  bool   `env:"TRACING_ENABLED" envDefault:"true"`
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"jaeger:4317"`
}

// Load reads envFile (if it exists) into the process environment and parses
// the result into a Config.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("No %s file found, reading from environment variables\n", envFile)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.JWT.ExpiresIn <= 0 {
		return nil, fmt.Errorf("parse config: JWT_EXPIRES_IN must be positive, got %s", cfg.JWT.ExpiresIn)
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func (c *Config) LogLevel() slog.Level {
	if c.IsDevelopment() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (c *DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func (c *S3Config) Enabled() bool {
	return c.BucketName != ""
}
