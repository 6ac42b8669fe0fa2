package config

import "time"

type SessionConfig interface {
	GetStateTTL() time.Duration
	GetMaxSessionAge() time.Duration
	GetSecureCookies() bool
}

type Session struct{}

var _ SessionConfig = Session{}

// GetStateTTL bounds how long an issued state waits for its callback.
func (Session) GetStateTTL() time.Duration {
	return 10 * time.Minute
}

func (Session) GetMaxSessionAge() time.Duration {
	return 7 * 24 * time.Hour
}

func (Session) GetSecureCookies() bool {
	return GetEnv("ENV", "DEV") != "DEV"
}
