package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileEnvVar names the optional YAML file read by Load.
const FileEnvVar = "SHEETS_CONFIG_FILE"

type Config interface {
	EnvConfig
	OAuthConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetLogLevel() string
	GetRedisAddr() string
	GetEnv() string
}

// File is the YAML layout of the configuration file. Every value can be
// overridden by its environment variable.
type File struct {
	AppName  string `yaml:"app_name"`
	Port     string `yaml:"port"`
	BaseURL  string `yaml:"base_url" validate:"omitempty,url"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	Redis    struct {
		Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
	} `yaml:"redis"`
	OAuth struct {
		ClientID         string   `yaml:"client_id"`
		ClientSecret     string   `yaml:"client_secret"`
		RedirectURL      string   `yaml:"redirect_url" validate:"omitempty,url"`
		AuthorizationURL string   `yaml:"authorization_url" validate:"omitempty,url"`
		TokenURL         string   `yaml:"token_url" validate:"omitempty,url"`
		APIBaseURL       string   `yaml:"api_base_url" validate:"omitempty,url"`
		Scopes           []string `yaml:"scopes"`
		PKCE             *bool    `yaml:"pkce"`
	} `yaml:"oauth"`
}

type mainConfig struct {
	EnvVars
	OAuth
	Session
}

// New returns a configuration backed by environment variables only.
func New() Config {
	return newConfig(&File{})
}

// Load reads the YAML file at path (skipped when path is empty) and layers
// environment variables on top of it.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("validate config file: %w", err)
	}

	return newConfig(&file), nil
}

func newConfig(file *File) Config {
	return mainConfig{
		EnvVars: EnvVars{file: file},
		OAuth:   OAuth{file: file},
		Session: Session{},
	}
}
