package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultView   = "network"
	DefaultCount  = 50
	DefaultWidth  = 1920
	DefaultHeight = 1080
	DefaultFPS    = 60
	DefaultFade   = 0.1
	DefaultTheme  = "cyberpunk"
	MaxCount      = 100000
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	View        string  `yaml:"view" validate:"oneof=network chip"`
	Count       int     `yaml:"count" validate:"min=1,max=100000"`
	Width       int     `yaml:"width" validate:"min=1"`
	Height      int     `yaml:"height" validate:"min=1"`
	FPS         int     `yaml:"fps" validate:"min=1,max=240"`
	Seed        int64   `yaml:"seed"`
	Fade        float64 `yaml:"fade" validate:"gt=0,lte=1"`
	Theme       string  `yaml:"theme"`
	LogLevel    string  `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFile     string  `yaml:"log_file"`
	Environment string  `yaml:"environment" validate:"omitempty,oneof=development production"`
}

func DefaultConfig() *Config {
	return &Config{
		View:        DefaultView,
		Count:       DefaultCount,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		FPS:         DefaultFPS,
		Fade:        DefaultFade,
		Theme:       DefaultTheme,
		LogLevel:    "info",
		Environment: "development",
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (got %v)", ErrInvalid, fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
