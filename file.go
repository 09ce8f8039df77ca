package soulnest

import (
	"context"
	"fmt"

	"github.com/soulnest/client-go/internal/api"
	"github.com/soulnest/client-go/internal/config"
	"github.com/soulnest/client-go/internal/credentials"
	"github.com/soulnest/client-go/internal/crypto"
	"github.com/soulnest/client-go/internal/telemetry"
)

// NewFromFile creates a client from a TOML or YAML settings file and the
// SOULNEST_* environment. An empty path uses the environment alone.
// opts are applied last and win over file and environment values.
func NewFromFile(path string, opts ...Option) (*Client, error) {
	settings, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	cfg := &clientConfig{api: api.DefaultConfig()}
	if err := applySettings(cfg, settings); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return newClient(cfg)
}

// applySettings maps settings onto cfg, opening the credential backend.
func applySettings(cfg *clientConfig, s *config.Settings) error {
	s.Apply(cfg.api)

	switch s.Encryption {
	case config.EncryptionMLKEM:
		cfg.encrypter = crypto.MLKEMSeal{}
	case config.EncryptionAuto:
		cfg.encrypter = crypto.Auto{}
	case config.EncryptionRSA:
		cfg.encrypter = crypto.RSAOAEP{}
	}

	if s.Log.Level != "" || s.Log.JSON {
		cfg.logger = telemetry.NewLogger(telemetry.LoggerConfig{
			Level: s.Log.Level,
			JSON:  s.Log.JSON,
		})
	}

	switch s.Credentials.Backend {
	case config.BackendFile:
		path, err := s.CredentialsPath()
		if err != nil {
			return fmt.Errorf("credentials file: %w", err)
		}
		cfg.storage = credentials.NewFileStorage(path)
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout(cfg.api))
		defer cancel()

		client, err := credentials.DialRedis(ctx, s.Credentials.RedisAddr, s.Credentials.RedisPassword, s.Credentials.RedisDB)
		if err != nil {
			return fmt.Errorf("credentials redis: %w", err)
		}
		cfg.storage = credentials.NewRedisStorage(client, credentials.WithKeyPrefix(s.Credentials.RedisPrefix))
		cfg.closers = append(cfg.closers, client.Close)
	}
	return nil
}
