package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int      `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat string   `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	HTTP      HTTP     `envPrefix:"HTTP_"`
	GRPC      GRPC     `envPrefix:"GRPC_"`
	Database  Database `envPrefix:"DATABASE_"`
	KDF       KDF      `envPrefix:"KDF_"`
	JWT       JWT      `envPrefix:"JWT_"`
	Session   Session  `envPrefix:"SESSION_"`
	Redis     Redis    `envPrefix:"REDIS_"`
	Model     Model    `envPrefix:"MODEL_"`
	Storage   Storage  `envPrefix:"MINIO_"`
}

// HTTP contains REST API server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	CookieName         string `env:"COOKIE_NAME" envDefault:"session" validate:"required"`
	CookieSecure       bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

// GRPC contains health service parameters.
type GRPC struct {
	Port               string `env:"PORT" envDefault:"50051" validate:"required,numeric"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// Database selects the credential store backend.
type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	DSN    string `env:"DSN" envDefault:"scorepredictor.db" validate:"required"`
}

// KDF contains argon2id parameters for password hashing.
type KDF struct {
	Time    uint32 `env:"TIME" envDefault:"3" validate:"gte=1"`
	MemKiB  uint32 `env:"MEM" envDefault:"65536" validate:"gte=8192"`
	Par     uint8  `env:"PAR" envDefault:"2" validate:"gte=1"`
	SaltLen uint32 `env:"SALT_LEN" envDefault:"16" validate:"gte=8"`
	KeyLen  uint32 `env:"KEY_LEN" envDefault:"32" validate:"gte=16"`
}

// JWT contains session cookie signing parameters.
type JWT struct {
	Secret string `env:"SECRET" envDefault:"devsecret" validate:"required,min=8"`
}

// Session contains session lifetime parameters.
type Session struct {
	TTL           time.Duration `env:"TTL" envDefault:"24h" validate:"gt=0"`
	PurgeInterval time.Duration `env:"PURGE_INTERVAL" envDefault:"10m" validate:"gt=0"`
}

// Redis holds session state when Addr is set; otherwise state stays in memory.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0" validate:"gte=0"`
	Prefix   string `env:"PREFIX" envDefault:"scorepredictor:session"`
}

// Model locates the scoring artifacts.
type Model struct {
	Source string `env:"SOURCE" envDefault:"dir" validate:"oneof=dir minio"`
	Dir    string `env:"DIR" envDefault:"model"`
	Prefix string `env:"PREFIX"`
}

// Storage contains object storage parameters.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"scorepredictor-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"scorepredictor-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"scorepredictor-models"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// NewConfig loads configuration from environment variables and validates it.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
