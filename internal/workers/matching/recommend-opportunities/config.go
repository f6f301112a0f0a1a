// internal/workers/matching/recommend-opportunities/config.go
package recommendopportunities

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		DefaultLimit: 10,
	}
}
