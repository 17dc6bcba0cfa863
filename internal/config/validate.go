package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateIdentify(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if c.Database.BaseURL == "" {
		return errors.New("database.base_url must be set")
	}
	parsed, err := url.Parse(c.Database.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("database.base_url %q is not an absolute URL", c.Database.BaseURL)
	}
	if c.Database.FetchTimeout <= 0 {
		return errors.New("database.fetch_timeout must be positive")
	}
	return nil
}

func (c *Config) validateIdentify() error {
	if c.Identify.ScanWorkers < 1 {
		return errors.New("identify.scan_workers must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "text", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, console, json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
