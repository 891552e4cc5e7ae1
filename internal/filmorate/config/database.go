package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"FILMORATE_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"FILMORATE_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"FILMORATE_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"FILMORATE_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"FILMORATE_POSTGRES_DB" env-default:"filmorate"`
	MinConn  int    `yaml:"min_conn" env:"FILMORATE_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"FILMORATE_POSTGRES_MAX_CONN" env-default:"10"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// MigrationsConfig указывает каталог SQL-миграций.
type MigrationsConfig struct {
	Path string `yaml:"path" env:"FILMORATE_MIGRATIONS_PATH" env-default:"migrations/filmorate"`
}
