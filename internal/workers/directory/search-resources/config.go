// internal/workers/directory/search-resources/config.go
package searchresources

import (
	"time"

	"housing-workers/internal/repository"
)

type Config struct {
	Timeout         time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		DefaultPageSize: repository.DefaultPageSize,
		MaxPageSize:     repository.MaxPageSize,
	}
}
