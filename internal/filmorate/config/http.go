package config

import (
	"net"
	"strconv"
	"time"
)

// HTTPConfig конфигурация HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"FILMORATE_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"FILMORATE_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"FILMORATE_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"FILMORATE_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес для HTTP сервера.
func (h *HTTPConfig) GetAddress() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}
