package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel        string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort        string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort      string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Redis           Redis         `yaml:"redis"`
	Postgres        Postgres      `yaml:"postgres"`
	JWTSecretKey    string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	TokenTTL        time.Duration `yaml:"token-ttl" env:"TOKEN_TTL" env-default:"24h"`
	Stake           Stake         `yaml:"stake"`
	StartingBalance uint64        `yaml:"starting-balance" env:"STARTING_BALANCE" env-default:"1000"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Postgres holds the settlement journal connection. An empty host disables the journal.
type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:""`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:""`
	DBName   string `yaml:"db-name" env:"POSTGRES_DB" env-default:"tictactoe"`
	SSLMode  string `yaml:"ssl-mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
}

// Stake bounds the buy-in accepted when a game is created.
type Stake struct {
	Min uint64 `yaml:"min" env:"STAKE_MIN" env-default:"1"`
	Max uint64 `yaml:"max" env:"STAKE_MAX" env-default:"1000000"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Postgres) Enabled() bool {
	return that.Host != ""
}

// DSN renders the connection string understood by the pgx driver.
func (that *Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		that.Host, that.Port, that.User, that.Password, that.DBName, that.SSLMode)
}
