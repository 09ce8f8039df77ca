package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/soulnest/client-go/internal/api"
)

// Credential backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Encryption schemes.
const (
	EncryptionRSA   = "rsa-oaep"
	EncryptionMLKEM = "ml-kem"
	EncryptionAuto  = "auto"
)

// Settings is the file and environment view of the client configuration.
type Settings struct {
	BaseURL         *string           `toml:"base_url" yaml:"base_url"`
	Timeout         *Duration         `toml:"timeout" yaml:"timeout"`
	WithCredentials *bool             `toml:"with_credentials" yaml:"with_credentials"`
	AdminMode       *bool             `toml:"admin_mode" yaml:"admin_mode"`
	AutoUnwrap      *bool             `toml:"auto_unwrap" yaml:"auto_unwrap"`
	Headers         map[string]string `toml:"headers" yaml:"headers"`
	Encryption      string            `toml:"encryption" yaml:"encryption"`

	Retry       RetrySettings      `toml:"retry" yaml:"retry"`
	Log         LogSettings        `toml:"log" yaml:"log"`
	Credentials CredentialSettings `toml:"credentials" yaml:"credentials"`
}

// RetrySettings mirrors api.RetryPolicy.
type RetrySettings struct {
	Retries       *int      `toml:"retries" yaml:"retries"`
	InitialDelay  *Duration `toml:"initial_delay" yaml:"initial_delay"`
	MaxDelay      *Duration `toml:"max_delay" yaml:"max_delay"`
	BackoffFactor *float64  `toml:"backoff_factor" yaml:"backoff_factor"`
	Methods       []string  `toml:"methods" yaml:"methods"`
}

// LogSettings configures the client logger.
type LogSettings struct {
	Level string `toml:"level" yaml:"level"`
	JSON  bool   `toml:"json" yaml:"json"`
}

// CredentialSettings selects where credentials are persisted.
type CredentialSettings struct {
	Backend       string `toml:"backend" yaml:"backend"`
	File          string `toml:"file" yaml:"file"`
	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int    `toml:"redis_db" yaml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix" yaml:"redis_prefix"`
}

// Duration is a time.Duration written as a Go duration string ("15s", "300ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Load reads the settings file at path. An empty path or a missing file
// yields empty settings. The format follows the extension: .toml, .yaml or .yml.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	if strings.TrimSpace(path) == "" {
		return s, nil
	}

	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(resolved)); ext {
	case ".toml":
		err = toml.Unmarshal(data, s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, s)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return s, nil
}

// LoadWithEnv reads the file at path and applies the process environment.
func LoadWithEnv(path string) (*Settings, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := s.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyEnv overrides s with SOULNEST_* variables found by lookup.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	strPtr := func(name string, dst **string) {
		if v, ok := lookup(name); ok {
			v = strings.TrimSpace(v)
			*dst = &v
		}
	}
	boolPtr := func(name string, dst **bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = &b
		}
	}
	durPtr := func(name string, dst **Duration) {
		if v, ok := lookup(name); ok {
			var d Duration
			if err := d.UnmarshalText([]byte(v)); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = &d
		}
	}

	strPtr("SOULNEST_BASE_URL", &s.BaseURL)
	durPtr("SOULNEST_TIMEOUT", &s.Timeout)
	boolPtr("SOULNEST_WITH_CREDENTIALS", &s.WithCredentials)
	boolPtr("SOULNEST_ADMIN_MODE", &s.AdminMode)
	boolPtr("SOULNEST_AUTO_UNWRAP", &s.AutoUnwrap)
	str("SOULNEST_ENCRYPTION", &s.Encryption)

	if v, ok := lookup("SOULNEST_RETRIES"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("SOULNEST_RETRIES: %w", err))
		} else {
			s.Retry.Retries = &n
		}
	}

	str("SOULNEST_LOG_LEVEL", &s.Log.Level)
	str("SOULNEST_CREDENTIALS_BACKEND", &s.Credentials.Backend)
	str("SOULNEST_CREDENTIALS_FILE", &s.Credentials.File)
	str("SOULNEST_REDIS_ADDR", &s.Credentials.RedisAddr)
	str("SOULNEST_REDIS_PASSWORD", &s.Credentials.RedisPassword)

	return errors.Join(errs...)
}

// Validate checks the enumerated fields.
func (s *Settings) Validate() error {
	switch s.Encryption {
	case "", EncryptionRSA, EncryptionMLKEM, EncryptionAuto:
	default:
		return fmt.Errorf("unknown encryption %q", s.Encryption)
	}
	switch s.Credentials.Backend {
	case "", BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown credentials backend %q", s.Credentials.Backend)
	}
	if s.Credentials.Backend == BackendRedis && s.Credentials.RedisAddr == "" {
		return errors.New("redis credentials backend requires redis_addr")
	}
	return nil
}

// Apply copies every set field onto cfg.
func (s *Settings) Apply(cfg *api.Config) {
	if s.BaseURL != nil {
		cfg.BaseURL = *s.BaseURL
	}
	if s.Timeout != nil {
		cfg.Timeout = time.Duration(*s.Timeout)
	}
	if s.WithCredentials != nil {
		cfg.WithCredentials = *s.WithCredentials
	}
	if s.AdminMode != nil {
		cfg.AdminMode = *s.AdminMode
	}
	if s.AutoUnwrap != nil {
		cfg.AutoUnwrap = *s.AutoUnwrap
	}
	if len(s.Headers) > 0 && cfg.DefaultHeaders == nil {
		cfg.DefaultHeaders = make(map[string]string, len(s.Headers))
	}
	for k, v := range s.Headers {
		cfg.DefaultHeaders[k] = v
	}

	r := s.Retry
	if r.Retries != nil {
		cfg.Retry.Retries = *r.Retries
	}
	if r.InitialDelay != nil {
		cfg.Retry.InitialDelay = time.Duration(*r.InitialDelay)
	}
	if r.MaxDelay != nil {
		cfg.Retry.MaxDelay = time.Duration(*r.MaxDelay)
	}
	if r.BackoffFactor != nil {
		cfg.Retry.BackoffFactor = *r.BackoffFactor
	}
	if len(r.Methods) > 0 {
		methods := make([]string, len(r.Methods))
		for i, m := range r.Methods {
			methods[i] = strings.ToUpper(strings.TrimSpace(m))
		}
		cfg.Retry.Methods = methods
	}
}

// CredentialsPath returns the credentials file path with "~" expanded.
func (s *Settings) CredentialsPath() (string, error) {
	if s.Credentials.File == "" {
		return ExpandPath(DefaultCredentialsFile)
	}
	return ExpandPath(s.Credentials.File)
}

// DefaultCredentialsFile is used by the file backend when no path is set.
const DefaultCredentialsFile = "~/.config/soulnest/credentials.json"

// ExpandPath trims path, expands a leading "~" and makes it absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
