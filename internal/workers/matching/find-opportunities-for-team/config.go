// internal/workers/matching/find-opportunities-for-team/config.go
package findopportunitiesforteam

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
