// Package config loads application settings from an optional YAML file and
// PREPEDIDO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Estimate struct {
		ApartmentCount int    `mapstructure:"apartment_count"`
		CurrentUser    string `mapstructure:"current_user"`
		Title          string
		Editable       bool
	} `mapstructure:"estimate"`

	Storage struct {
		Persist bool
	} `mapstructure:"storage"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

const DefaultTitle = "Prepedido - Estimación de Materiales"

func setDefaults(v *viper.Viper) {
	v.SetDefault("estimate.apartment_count", 80)
	v.SetDefault("estimate.current_user", "Usuario Actual")
	v.SetDefault("estimate.title", DefaultTitle)
	v.SetDefault("estimate.editable", true)
	v.SetDefault("storage.persist", false)
	v.SetDefault("metrics.enabled", true)
}

// Load reads the config file at path (skipped when path is empty), applies
// environment overrides such as PREPEDIDO_ESTIMATE_APARTMENT_COUNT and
// validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PREPEDIDO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Default returns the built-in settings.
func Default() Config {
	c, err := Load("")
	if err != nil {
		// Only reachable through a bad PREPEDIDO_* environment.
		var d Config
		d.Estimate.ApartmentCount = 80
		d.Estimate.CurrentUser = "Usuario Actual"
		d.Estimate.Title = DefaultTitle
		d.Estimate.Editable = true
		d.Metrics.Enabled = true
		return d
	}
	return c
}

func (c Config) Validate() error {
	var errs []error
	if c.Estimate.ApartmentCount < 0 {
		errs = append(errs, fmt.Errorf("invalid apartment_count %d: must not be negative", c.Estimate.ApartmentCount))
	}
	if strings.TrimSpace(c.Estimate.CurrentUser) == "" {
		errs = append(errs, errors.New("current_user is required"))
	}
	return errors.Join(errs...)
}
