// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCountry = "se"
	DefaultService = "ds"
	DefaultTimeout = 30 * time.Second
)

var (
	defaultAllowedCountries = []string{"se", "us", "gb", "de", "fr", "es", "it", "nl", "pl", "ru"}
	defaultAllowedServices  = []string{"ds", "tg", "wa", "tw", "ub", "go", "ig", "fb", "tt", "ms"}
)

// Config is built once at startup and only read afterwards.
type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	// Provider settings
	APIURL           string
	Token            string
	DefaultCountry   string
	DefaultService   string
	AllowedCountries map[string]struct{}
	AllowedServices  map[string]struct{}
	Timeout          time.Duration

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	MetricsEnabled     bool
}

// Load reads configuration from environment variables or .env file.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if !isProduction(env) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		APIURL:           getEnv("TIGER_SMS_API_URL", ""),
		Token:            getEnv("TIGER_SMS_TOKEN", ""),
		DefaultCountry:   getEnv("TIGER_SMS_DEFAULT_COUNTRY", DefaultCountry),
		DefaultService:   getEnv("TIGER_SMS_DEFAULT_SERVICE", DefaultService),
		AllowedCountries: NewCodeSet(getEnvAsList("TIGER_SMS_ALLOWED_COUNTRIES", defaultAllowedCountries)),
		AllowedServices:  NewCodeSet(getEnvAsList("TIGER_SMS_ALLOWED_SERVICES", defaultAllowedServices)),
		Timeout:          getEnvAsDuration("TIGER_SMS_TIMEOUT", DefaultTimeout),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRequests:  getEnvAsInt("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),
	}

	if isProduction(env) {
		missing := []string{}
		if cfg.APIURL == "" {
			missing = append(missing, "TIGER_SMS_API_URL")
		}
		if cfg.Token == "" {
			missing = append(missing, "TIGER_SMS_TOKEN")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required production environment variables: %v", missing)
		}
	}

	return cfg, nil
}

// IsProduction reports whether ENV selected the production profile.
func (c *Config) IsProduction() bool {
	return isProduction(c.Environment)
}

// CountryList returns the allowed countries in sorted order.
func (c *Config) CountryList() []string {
	return sortedCodes(c.AllowedCountries)
}

// ServiceList returns the allowed services in sorted order.
func (c *Config) ServiceList() []string {
	return sortedCodes(c.AllowedServices)
}

// NewCodeSet normalises codes to lower case and drops blanks.
func NewCodeSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" {
			set[code] = struct{}{}
		}
	}
	return set
}

func sortedCodes(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func isProduction(env string) bool {
	return strings.ToLower(env) == "production"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as bool. Using default value.", key)
		return defaultValue
	}
	return boolValue
}

// getEnvAsDuration accepts Go durations ("45s") or a plain number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if strValue == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(strValue); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(strValue)
	if err != nil || d <= 0 {
		log.Printf("Warning: could not parse env var %s as duration. Using default value.", key)
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma separated env var.
func getEnvAsList(key string, defaultValue []string) []string {
	strValue := getEnv(key, "")
	if strings.TrimSpace(strValue) == "" {
		return append([]string(nil), defaultValue...)
	}
	parts := strings.Split(strValue, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
