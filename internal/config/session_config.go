package config

import "time"

type SessionConfig interface {
	GetDefaultAccessTokenExpiry() time.Duration
	GetDefaultRefreshTokenExpiry() time.Duration
	GetProactiveRefreshWindow() time.Duration
	GetMonitorInterval() time.Duration
	GetRequestTimeout() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetDefaultAccessTokenExpiry() time.Duration {
	return 15 * time.Minute
}

func (Session) GetDefaultRefreshTokenExpiry() time.Duration {
	return 7 * 24 * time.Hour // 7 days
}

func (Session) GetProactiveRefreshWindow() time.Duration {
	return 2 * time.Minute
}

func (Session) GetMonitorInterval() time.Duration {
	return 30 * time.Second
}

func (Session) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}
