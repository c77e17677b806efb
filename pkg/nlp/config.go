package nlp

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	TransportHTTP      = "http"
	TransportWebSocket = "ws"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	ServiceURL   string        `envconfig:"SERVICE_URL" required:"true"`
	Transport    string        `envconfig:"TRANSPORT" default:"http"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"10s"`
	CacheBackend string        `envconfig:"CACHE_BACKEND" default:"memory"`
	CacheSize    int           `envconfig:"CACHE_SIZE" default:"0"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"0s"`
	SingleFlight bool          `envconfig:"SINGLE_FLIGHT" default:"false"`
}

// LoadConfig reads NLP_* variables from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("NLP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load nlp config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServiceURL) == "" {
		return fmt.Errorf("NLP_SERVICE_URL must not be empty")
	}

	switch c.Transport {
	case TransportHTTP, TransportWebSocket:
	default:
		return fmt.Errorf("unsupported NLP_TRANSPORT %q", c.Transport)
	}

	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unsupported NLP_CACHE_BACKEND %q", c.CacheBackend)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("NLP_CACHE_SIZE must not be negative")
	}

	return nil
}
