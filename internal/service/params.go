package service

import "time"

// LogFilter supports command log filtering by time range, type and trigger.
type LogFilter struct {
	From    time.Time // inclusive; zero means no lower bound
	To      time.Time // inclusive; zero means no upper bound
	Type    string    // "", "ON", "OFF", "TIMED_ON", "AUTO_OFF"
	Trigger string    // "", "interaction", "schedule", "api"
	Limit   int       // 0 means unlimited
}

// AuthConfig describes the single admin allowed to use the HTTP API.
type AuthConfig struct {
	AdminUser         string
	AdminPasswordHash string // bcrypt
	SigningKey        string
	TokenTTL          time.Duration
}
