// internal/workers/calculators/check-income-qualification/config.go
package checkincomequalification

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
