package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Стратегии аутентификации
const (
	StrategyToken   = "token"
	StrategySession = "session"
	StrategyJWT     = "jwt"
)

var ErrJWTSecretRequired = errors.New("JWT_SECRET is required for jwt auth strategy")

// Config содержит параметры сервиса
type Config struct {
	LogLevel string   `env:"LOG_LEVEL" envDefault:"info"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Database Database `envPrefix:"DB_"`
	Auth     Auth     `envPrefix:"AUTH_"`
	JWT      JWT      `envPrefix:"JWT_"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// HTTP содержит параметры HTTP сервера
type HTTP struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Database содержит параметры подключения к Postgres
type Database struct {
	Host            string `env:"HOST" envDefault:"localhost"`
	Port            string `env:"PORT" envDefault:"5432"`
	User            string `env:"USER" envDefault:"postgres"`
	Password        string `env:"PASSWORD"`
	Name            string `env:"NAME" envDefault:"events"`
	SSLMode         string `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int    `env:"MAX_OPEN_CONNS" envDefault:"25"`
	ConnectAttempts int    `env:"CONNECT_ATTEMPTS" envDefault:"10"`
}

// DSN собирает строку подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Auth выбирает способ передачи учетных данных
type Auth struct {
	Strategy     string        `env:"STRATEGY" envDefault:"token"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"_session_id"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// JWT содержит параметры подписи токенов
type JWT struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	switch c.Auth.Strategy {
	case StrategyToken, StrategySession:
	case StrategyJWT:
		if c.JWT.Secret == "" {
			return ErrJWTSecretRequired
		}
	default:
		return fmt.Errorf("unknown auth strategy %q", c.Auth.Strategy)
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost %d is out of range", c.BcryptCost)
	}

	return nil
}
