// internal/config/config.go
//
// Runtime configuration.
//
// Load order (later wins):
//   1. Defaults().
//   2. `.env` in the working directory, if present (read with godotenv into a
//      map; the process environment is left untouched).
//   3. YAML file at path, if path is non-empty.
//   4. Environment variables.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	Port         string `yaml:"port"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"` // json | console
	DBPath       string `yaml:"db_path"`
	JWTSecret    string `yaml:"jwt_secret"`
	JWTDays      int    `yaml:"jwt_expires_days"`
	CookieName   string `yaml:"cookie_name"`
	Production   bool   `yaml:"production"`
	ClientOrigin string `yaml:"client_origin"`
	DailySalt    string `yaml:"daily_salt"`
	AnswersFile  string `yaml:"answers_file"`
	AllowedFile  string `yaml:"allowed_file"`
	WordLength   int    `yaml:"word_length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	RoundTTL     string `yaml:"round_ttl"` // time.ParseDuration form
}

func Defaults() Config {
	return Config{
		Port:         "5175",
		LogLevel:     "info",
		LogFormat:    "json",
		DBPath:       "./data/app.db",
		JWTSecret:    devSecret,
		JWTDays:      14,
		CookieName:   "wordle_token",
		ClientOrigin: "http://localhost:5173",
		DailySalt:    "local_dev_salt",
		WordLength:   5,
		MaxAttempts:  6,
		RoundTTL:     "24h",
	}
}

// Load builds a Config from defaults, .env, an optional YAML file and the environment.
func Load(path string) (Config, error) {
	dot, err := godotenv.Read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Defaults()
	if err := cfg.applyOverrides(func(k string) string { return dot[k] }); err != nil {
		return Config{}, fmt.Errorf(".env: %w", err)
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() error { return c.applyOverrides(os.Getenv) }

// applyOverrides sets every field whose variable get returns non-empty.
func (c *Config) applyOverrides(get func(string) string) error {
	str := map[string]*string{
		"PORT":               &c.Port,
		"LOG_LEVEL":          &c.LogLevel,
		"LOG_FORMAT":         &c.LogFormat,
		"DB_PATH":            &c.DBPath,
		"JWT_SECRET":         &c.JWTSecret,
		"COOKIE_NAME":        &c.CookieName,
		"CLIENT_ORIGIN":      &c.ClientOrigin,
		"DAILY_SALT":         &c.DailySalt,
		"WORDS_ANSWERS_FILE": &c.AnswersFile,
		"WORDS_ALLOWED_FILE": &c.AllowedFile,
		"ROUND_TTL":          &c.RoundTTL,
	}
	for k, p := range str {
		if v := get(k); v != "" {
			*p = v
		}
	}
	ints := map[string]*int{
		"JWT_EXPIRES_DAYS": &c.JWTDays,
		"WORD_LENGTH":      &c.WordLength,
		"MAX_ATTEMPTS":     &c.MaxAttempts,
	}
	for k, p := range ints {
		v := get(k)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		*p = n
	}
	if v := get("NODE_ENV"); v != "" {
		c.Production = strings.EqualFold(v, "production")
	}
	return nil
}

// Validate rejects values no component could run with.
func (c Config) Validate() error {
	switch {
	case c.WordLength <= 0:
		return fmt.Errorf("word_length must be positive, got %d", c.WordLength)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("max_attempts must be positive, got %d", c.MaxAttempts)
	case c.JWTDays <= 0:
		return fmt.Errorf("jwt_expires_days must be positive, got %d", c.JWTDays)
	case c.LogFormat != "json" && c.LogFormat != "console":
		return fmt.Errorf("log_format must be json or console, got %q", c.LogFormat)
	case c.Production && c.JWTSecret == devSecret:
		return errors.New("JWT_SECRET must be set in production")
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// TTL parses RoundTTL; an empty value disables eviction.
func (c Config) TTL() (time.Duration, error) {
	if c.RoundTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RoundTTL)
	if err != nil {
		return 0, fmt.Errorf("round_ttl: %w", err)
	}
	return d, nil
}

// TokenTTL is the auth token lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTDays) * 24 * time.Hour
}
