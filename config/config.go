package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Store       Store       `json:"store" yaml:"store" mapstructure:"store"`
	TMDB        TMDB        `json:"tmdb" yaml:"tmdb" mapstructure:"tmdb"`
	Recommender Recommender `json:"recommender" yaml:"recommender" mapstructure:"recommender"`
	Sync        Sync        `json:"sync" yaml:"sync" mapstructure:"sync"`
	Server      Server      `json:"server" yaml:"server" mapstructure:"server"`
	History     History     `json:"history" yaml:"history" mapstructure:"history"`
}

// Store selects and configures the collection backend
type Store struct {
	Backend string      `json:"backend" yaml:"backend" mapstructure:"backend" validate:"oneof=github file memory"`
	GitHub  GitHubStore `json:"github" yaml:"github" mapstructure:"github"`
	File    FileStore   `json:"file" yaml:"file" mapstructure:"file"`
}

type GitHubStore struct {
	Owner  string `json:"owner" yaml:"owner" mapstructure:"owner"`
	Repo   string `json:"repo" yaml:"repo" mapstructure:"repo"`
	Path   string `json:"path" yaml:"path" mapstructure:"path"`
	Branch string `json:"branch" yaml:"branch" mapstructure:"branch"`
	Token  string `json:"token" yaml:"token" mapstructure:"token"`
}

type FileStore struct {
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

type TMDB struct {
	URI         string        `json:"uri" yaml:"uri" mapstructure:"uri" validate:"required"`
	APIKey      string        `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
	LookupTTL   time.Duration `json:"lookupTTL" yaml:"lookupTTL" mapstructure:"lookupTTL"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries"`
}

type Recommender struct {
	URI    string `json:"uri" yaml:"uri" mapstructure:"uri" validate:"required"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
	Model  string `json:"model" yaml:"model" mapstructure:"model"`
}

// Sync houses configuration for the reconciliation run itself
type Sync struct {
	Interval       time.Duration `json:"interval" yaml:"interval" mapstructure:"interval" validate:"gt=0"`
	LookupTimeout  time.Duration `json:"lookupTimeout" yaml:"lookupTimeout" mapstructure:"lookupTimeout" validate:"gt=0"`
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout" mapstructure:"requestTimeout" validate:"gt=0"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gt=0,lte=65535"`
}

// History configures the local run history database
type History struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads and validates a configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	if err := cu.Unmarshal(&c); err != nil {
		return c, err
	}

	if err := validator.New().Struct(c); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}
