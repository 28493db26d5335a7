// internal/workers/tenancy/resolve-organization/config.go
package resolveorganization

import "time"

type Config struct {
	Timeout             time.Duration
	CacheTTL            time.Duration
	DefaultOrganization string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:             5 * time.Second,
		CacheTTL:            5 * time.Minute,
		DefaultOrganization: "dndc",
	}
}
