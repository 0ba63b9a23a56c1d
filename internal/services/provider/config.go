// File: internal/services/provider/config.go
package provider

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	APIURL       string
	Token        string
	Timeout      time.Duration
	MaxBodyBytes int64
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("TIGER_SMS_API_URL is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("TIGER_SMS_API_URL must be an absolute http(s) URL")
	}
	if c.Token == "" {
		return fmt.Errorf("TIGER_SMS_TOKEN is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body size must be positive")
	}
	return nil
}
