package config

import (
	"errors"
	"fmt"
)

// Типы хранилища.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// ErrUnknownStorage - неизвестный тип хранилища.
var ErrUnknownStorage = errors.New("unknown storage type")

// StorageConfig выбирает бэкенд хранилища при старте процесса.
type StorageConfig struct {
	Type string `yaml:"type" env:"FILMORATE_STORAGE_TYPE" env-default:"memory"`
}

// Validate проверяет тип хранилища.
func (s *StorageConfig) Validate() error {
	switch s.Type {
	case StorageMemory, StoragePostgres:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, s.Type)
	}
}

// IsPostgres сообщает, что выбран PostgreSQL.
func (s *StorageConfig) IsPostgres() bool {
	return s.Type == StoragePostgres
}
