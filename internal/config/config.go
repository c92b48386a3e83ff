// Package config loads skillpath settings. Sources are applied in order,
// each overriding the last: built-in defaults, an optional YAML file, then
// SKILLPATH_* environment variables (a .env file in the working directory
// is loaded into the environment first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/quiz"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`

	// LLM is read from the environment only, so API keys never live in
	// the YAML file.
	LLM llm.Config `yaml:"-"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	// DSN is a file path or URI for sqlite and a connection string for
	// postgres. An empty sqlite DSN means the default data directory.
	DSN      string `yaml:"dsn"`
	MaxConns int    `yaml:"max_conns"`
}

type QuizConfig struct {
	Size          int `yaml:"size"`
	MinPoolSize   int `yaml:"min_pool_size"`
	PassThreshold int `yaml:"pass_threshold"`
}

type AuthConfig struct {
	// JWTSecret enables bearer auth on the API when set.
	JWTSecret string `yaml:"jwt_secret"`
}

type RedisConfig struct {
	// Addr enables the distributed backfill lock when set.
	Addr    string        `yaml:"addr"`
	LockTTL time.Duration `yaml:"lock_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	q := quiz.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			RequestTimeout: 2 * time.Minute,
		},
		Database: DatabaseConfig{Driver: "sqlite"},
		Quiz: QuizConfig{
			Size:          q.QuizSize,
			MinPoolSize:   q.MinPoolSize,
			PassThreshold: q.PassThreshold,
		},
		Redis: RedisConfig{LockTTL: 2 * time.Minute},
		Log:   LogConfig{Level: "info", Format: "json"},
		LLM:   llm.DefaultConfig(),
	}
}

// Load builds the configuration. path may be empty.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.LLM = llm.ResolveConfig()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file on cfg. Keys absent from the file keep
// their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

type envBinding struct {
	name string
	set  func(*Config, string) error
}

var envBindings = []envBinding{
	{"SERVER_ADDR", func(c *Config, v string) error { c.Server.Addr = v; return nil }},
	{"ALLOWED_ORIGINS", func(c *Config, v string) error { c.Server.AllowedOrigins = splitList(v); return nil }},
	{"REQUEST_TIMEOUT", func(c *Config, v string) error { return setDuration(&c.Server.RequestTimeout, v) }},
	{"DB_DRIVER", func(c *Config, v string) error { c.Database.Driver = v; return nil }},
	{"DB_DSN", func(c *Config, v string) error { c.Database.DSN = v; return nil }},
	{"DB_MAX_CONNS", func(c *Config, v string) error { return setInt(&c.Database.MaxConns, v) }},
	{"QUIZ_SIZE", func(c *Config, v string) error { return setInt(&c.Quiz.Size, v) }},
	{"QUIZ_MIN_POOL_SIZE", func(c *Config, v string) error { return setInt(&c.Quiz.MinPoolSize, v) }},
	{"QUIZ_PASS_THRESHOLD", func(c *Config, v string) error { return setInt(&c.Quiz.PassThreshold, v) }},
	{"JWT_SECRET", func(c *Config, v string) error { c.Auth.JWTSecret = v; return nil }},
	{"REDIS_ADDR", func(c *Config, v string) error { c.Redis.Addr = v; return nil }},
	{"REDIS_LOCK_TTL", func(c *Config, v string) error { return setDuration(&c.Redis.LockTTL, v) }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"LOG_FORMAT", func(c *Config, v string) error { c.Log.Format = v; return nil }},
}

func (c *Config) applyEnv() error {
	for _, b := range envBindings {
		name := llm.EnvPrefix + b.name
		if v := os.Getenv(name); v != "" {
			if err := b.set(c, v); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the non-LLM settings. Provider keys are checked when a
// command actually needs the generator.
func (c Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver))
	}
	if c.Quiz.Size < 1 {
		errs = append(errs, errors.New("quiz.size must be at least 1"))
	}
	if c.Quiz.MinPoolSize < 0 {
		errs = append(errs, errors.New("quiz.min_pool_size must not be negative"))
	}
	if c.Quiz.PassThreshold < 0 || c.Quiz.PassThreshold > 100 {
		errs = append(errs, errors.New("quiz.pass_threshold must be between 0 and 100"))
	}
	if c.Server.RequestTimeout < 0 {
		errs = append(errs, errors.New("server.request_timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// QuizEngine converts the quiz settings for quiz.NewEngine.
func (c Config) QuizEngine() quiz.Config {
	return quiz.Config{
		QuizSize:      c.Quiz.Size,
		MinPoolSize:   c.Quiz.MinPoolSize,
		PassThreshold: c.Quiz.PassThreshold,
	}
}
