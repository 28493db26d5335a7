// internal/workers/contact/submit-contact-message/config.go
package submitcontactmessage

import (
	"time"

	"housing-workers/internal/models"
)

type Config struct {
	Timeout time.Duration
	Card    models.ContactCard
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
