// internal/workers/matching/find-teams-for-opportunity/config.go
package findteamsforopportunity

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
