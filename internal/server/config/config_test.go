package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.EndpointAddr)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, "local", cfg.StorageBackend)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestParseEnvOverlay(t *testing.T) {
	t.Setenv("PHOTOVAULT_ADDR", ":9999")
	t.Setenv("PHOTOVAULT_STORAGE_BACKEND", "memory")
	t.Setenv("PHOTOVAULT_SESSION_TTL", "30m")
	t.Setenv("PHOTOVAULT_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, ":9999", cfg.EndpointAddr)
	require.Equal(t, "memory", cfg.StorageBackend)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestParseEnvInvalidTTLIgnored(t *testing.T) {
	t.Setenv("PHOTOVAULT_SESSION_TTL", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestJsonConfigPartialOverlay(t *testing.T) {
	raw := []byte(`{"endpoint_addr": ":7070", "session_ttl": "1h"}`)
	c := &JsonConfig{}
	require.NoError(t, json.Unmarshal(raw, c))

	require.NotNil(t, c.EndpointAddr)
	require.Equal(t, ":7070", *c.EndpointAddr)
	require.Equal(t, time.Hour, c.SessionTTL.Duration)
	require.Nil(t, c.DatabaseDSN, "absent fields stay nil")
}

func TestParseJsonFromFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = file.WriteString(`{"database_dsn": "postgres://test", "storage_backend": "s3"}`)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	oldArgs := os.Args
	os.Args = []string{"server", "-c", file.Name()}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "postgres://test", cfg.DatabaseDSN)
	require.Equal(t, "s3", cfg.StorageBackend)
	require.Equal(t, ":8080", cfg.EndpointAddr, "absent fields keep defaults")
}

func TestSplitOrigins(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitOrigins("a, b,"))
	require.Empty(t, splitOrigins(""))
}
