package sheetscribe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/llm"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/relay"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/store"
)

// APIKeyEnv overrides the stored API key when set.
const APIKeyEnv = "ANTHROPIC_API_KEY"

const appDir = "sheetscribe"

// StoreKind names a store backend.
type StoreKind string

const (
	StoreFile  StoreKind = "file"
	StoreRedis StoreKind = "redis"
)

// StoreConfig selects where the key and last response are kept.
type StoreConfig struct {
	Kind        StoreKind `yaml:"kind"`
	Path        string    `yaml:"path,omitempty"`
	RedisAddr   string    `yaml:"redis_addr,omitempty"`
	RedisDB     int       `yaml:"redis_db,omitempty"`
	RedisPrefix string    `yaml:"redis_prefix,omitempty"`
}

// RelayConfig configures the local relay listener.
type RelayConfig struct {
	Addr          string `yaml:"addr"`
	AllowedOrigin string `yaml:"allowed_origin"`
	CertFile      string `yaml:"cert_file,omitempty"`
	KeyFile       string `yaml:"key_file,omitempty"`
}

// Config is the user configuration file.
type Config struct {
	Model            string `yaml:"model"`
	MaxTokens        int    `yaml:"max_tokens"`
	AnthropicVersion string `yaml:"anthropic_version"`
	Endpoint         string `yaml:"endpoint"`
	// RelayURL routes model calls through the relay when set.
	RelayURL string      `yaml:"relay_url,omitempty"`
	LogLevel string      `yaml:"log_level"`
	Store    StoreConfig `yaml:"store"`
	Relay    RelayConfig `yaml:"relay"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Model:            llm.DefaultModel,
		MaxTokens:        llm.DefaultMaxTokens,
		AnthropicVersion: llm.DefaultVersion,
		Endpoint:         llm.DefaultEndpoint,
		LogLevel:         "info",
		Store: StoreConfig{
			Kind:        StoreFile,
			RedisAddr:   "localhost:6379",
			RedisPrefix: store.DefaultPrefix,
		},
		Relay: RelayConfig{
			Addr:          relay.DefaultAddr,
			AllowedOrigin: relay.DefaultAllowedOrigin,
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/sheetscribe/config.yaml or the
// platform equivalent.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, appDir, "config.yaml"), nil
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.Store.Kind == StoreFile && cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(filepath.Dir(path), "state.yaml")
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Store.Kind {
	case StoreFile, StoreRedis:
	default:
		return fmt.Errorf("store.kind %q: expected file or redis", c.Store.Kind)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if (c.Relay.CertFile == "") != (c.Relay.KeyFile == "") {
		return errors.New("relay.cert_file and relay.key_file must be set together")
	}
	return nil
}

// LLMOptions returns the model client options.
func (c Config) LLMOptions() llm.Options {
	return llm.Options{
		Endpoint:  c.Endpoint,
		Model:     c.Model,
		Version:   c.AnthropicVersion,
		MaxTokens: c.MaxTokens,
	}
}

// RelayServerConfig returns the relay listener settings.
func (c Config) RelayServerConfig() relay.Config {
	return relay.Config{
		Addr:          c.Relay.Addr,
		AllowedOrigin: c.Relay.AllowedOrigin,
		CertFile:      c.Relay.CertFile,
		KeyFile:       c.Relay.KeyFile,
		Upstream:      c.LLMOptions(),
	}
}

// OpenStore builds the configured store.
func (c Config) OpenStore() store.Store {
	if c.Store.Kind == StoreRedis {
		return store.NewRedis(c.Store.RedisAddr, c.Store.RedisDB, store.WithPrefix(c.Store.RedisPrefix))
	}
	return store.NewFile(c.Store.Path)
}

// NewCaller builds the model caller for apiKey, via the relay when configured.
func (c Config) NewCaller(apiKey string) llm.Caller {
	if c.RelayURL != "" {
		return llm.NewRelayClient(c.RelayURL, apiKey, nil)
	}
	return llm.NewClient(apiKey, c.LLMOptions())
}

// ResolveAPIKey returns the key from the environment or the store.
// A key that was never saved yields "" without error.
func ResolveAPIKey(ctx context.Context, st store.Store) (string, error) {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		return key, nil
	}
	key, err := st.APIKey(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load api key: %w", err)
	}
	return key, nil
}
