package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Log        LogConfig
	Auth       AuthConfig
	Diagnostic DiagnosticConfig
	Order      OrderConfig
}

type ServerConfig struct {
	Port int
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
	TxTimeout       time.Duration
	AutoMigrate     bool
}

type LogConfig struct {
	Level  string
	Format string
}

// AuthConfig holds the token signing material. The key is process-wide and
// read once at startup.
type AuthConfig struct {
	SigningKey string
	Issuer     string
	Audience   string
	TokenTTL   time.Duration
}

type DiagnosticConfig struct {
	APIKey string
}

type OrderConfig struct {
	AtomicCompletion bool
}

// Load reads configuration from the environment. A .env file in the working
// directory and a YAML file named by CONFIG_FILE are honoured when present;
// real environment variables win over both.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	db, err := databaseConfig(v)
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(v.GetString("AUTH_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing AUTH_TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: *db,
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: AuthConfig{
			SigningKey: v.GetString("AUTH_SIGNING_KEY"),
			Issuer:     v.GetString("AUTH_ISSUER"),
			Audience:   v.GetString("AUTH_AUDIENCE"),
			TokenTTL:   tokenTTL,
		},
		Diagnostic: DiagnosticConfig{
			APIKey: v.GetString("DIAGNOSTIC_API_KEY"),
		},
		Order: OrderConfig{
			AtomicCompletion: v.GetBool("ORDER_ATOMIC_COMPLETION"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads only the database and logging settings. Admin tooling
// uses it so that it does not need the HTTP secrets.
func LoadDatabase() (*DatabaseConfig, *LogConfig, error) {
	v, err := newViper()
	if err != nil {
		return nil, nil, err
	}

	db, err := databaseConfig(v)
	if err != nil {
		return nil, nil, err
	}

	return db, &LogConfig{Level: v.GetString("LOG_LEVEL"), Format: v.GetString("LOG_FORMAT")}, nil
}

func newViper() (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "ventas")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "ventas")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_TX_TIMEOUT", "5s")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("AUTH_SIGNING_KEY", "")
	v.SetDefault("AUTH_ISSUER", "ventas-api")
	v.SetDefault("AUTH_AUDIENCE", "ventas-clients")
	v.SetDefault("AUTH_TOKEN_TTL", "30m")
	v.SetDefault("DIAGNOSTIC_API_KEY", "")
	v.SetDefault("ORDER_ATOMIC_COMPLETION", false)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	return v, nil
}

func databaseConfig(v *viper.Viper) (*DatabaseConfig, error) {
	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	txTimeout, err := time.ParseDuration(v.GetString("DB_TX_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_TX_TIMEOUT: %w", err)
	}

	return &DatabaseConfig{
		Host:            v.GetString("DB_HOST"),
		Port:            v.GetInt("DB_PORT"),
		User:            v.GetString("DB_USER"),
		Password:        v.GetString("DB_PASSWORD"),
		Name:            v.GetString("DB_NAME"),
		MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: connMaxLifetime,
		TxTimeout:       txTimeout,
		AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
	}, nil
}

func (c *Config) validate() error {
	if c.Auth.SigningKey == "" {
		return errors.New("AUTH_SIGNING_KEY must be set")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("AUTH_TOKEN_TTL must be positive")
	}
	if c.Diagnostic.APIKey == "" {
		return errors.New("DIAGNOSTIC_API_KEY must be set")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("SERVER_PORT must be positive, got %d", c.Server.Port)
	}
	return nil
}
