package sheetscribe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/llm"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/store"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultModel, cfg.Model)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, StoreFile, cfg.Store.Kind)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "state.yaml"), cfg.Store.Path)
	assert.Equal(t, ":3001", cfg.Relay.Addr)
	assert.Equal(t, "https://localhost:3000", cfg.Relay.AllowedOrigin)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: claude-test
max_tokens: 512
relay_url: https://localhost:3001/api/claude
store:
  kind: redis
  redis_addr: 127.0.0.1:6380
  redis_prefix: "test:"
relay:
  addr: ":9000"
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "claude-test", cfg.Model)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, llm.DefaultVersion, cfg.AnthropicVersion)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "test:", cfg.Store.RedisPrefix)
	assert.Equal(t, ":9000", cfg.Relay.Addr)
	assert.Equal(t, "https://localhost:3000", cfg.Relay.AllowedOrigin)

	_, isRelay := cfg.NewCaller("k").(*llm.RelayClient)
	assert.True(t, isRelay)
	_, isRedis := cfg.OpenStore().(*store.Redis)
	assert.True(t, isRedis)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":    "model: [",
		"bad store":   "store:\n  kind: s3\n",
		"zero tokens": "max_tokens: 0\n",
		"half tls":    "relay:\n  cert_file: cert.pem\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfigDirectCaller(t *testing.T) {
	_, isClient := DefaultConfig().NewCaller("k").(*llm.Client)
	assert.True(t, isClient)
}

func TestResolveAPIKey(t *testing.T) {
	ctx := context.Background()
	st := store.NewFile(filepath.Join(t.TempDir(), "state.yaml"))

	t.Setenv(APIKeyEnv, "")
	key, err := ResolveAPIKey(ctx, st)
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, st.SetAPIKey(ctx, "sk-stored"))
	key, err = ResolveAPIKey(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "sk-stored", key)

	t.Setenv(APIKeyEnv, "sk-env")
	key, err = ResolveAPIKey(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", key)
}
