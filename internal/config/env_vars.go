package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	baseURLVar      = "BASE_URL"
	logLevelEnvVar  = "LOG_LEVEL"
	redisAddrEnvVar = "SHEETS_REDIS_ADDR"
)

type EnvVars struct {
	file *File
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, fileValue(e.file, func(f *File) string { return f.Port }, "8080"))
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return GetEnv(appNameVar, fileValue(e.file, func(f *File) string { return f.AppName }, "Sheets OAuth Demo"))
}

// GetBaseURL returns the externally visible URL of the demo server (e.g., "https://sheets-demo.example.com")
// The default redirect URL is derived from it.
func (e EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, fileValue(e.file, func(f *File) string { return f.BaseURL }, "http://localhost:8080"))
}

func (e EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, fileValue(e.file, func(f *File) string { return f.LogLevel }, "info"))
}

// GetRedisAddr returns host:port of the Redis used for issued state, or "" for in-memory storage.
func (e EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrEnvVar, fileValue(e.file, func(f *File) string { return f.Redis.Addr }, ""))
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func fileValue(file *File, get func(*File) string, defaultValue string) string {
	if file == nil {
		return defaultValue
	}
	if v := get(file); v != "" {
		return v
	}
	return defaultValue
}
