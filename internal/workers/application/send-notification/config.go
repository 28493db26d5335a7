// internal/workers/application/send-notification/config.go
package sendnotification

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	// SMSPriority is the priority at which SMS is sent for any notification.
	SMSPriority string
	StaffEmail  string
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SMSPriority: PriorityHigh,
		Timeout:     30 * time.Second,
	}
}
