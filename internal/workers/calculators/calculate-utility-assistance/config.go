// internal/workers/calculators/calculate-utility-assistance/config.go
package calculateutilityassistance

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
