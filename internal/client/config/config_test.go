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

	require.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "photovault.db", cfg.KeystorePath)
}

func TestParseFlagsOverride(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cli", "-a", "https://vault.example", "-i", "5"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "https://vault.example", cfg.ServerURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestJsonConfigDurationForms(t *testing.T) {
	var jc JsonConfig
	require.NoError(t, json.Unmarshal([]byte(`{"request_timeout": "45s"}`), &jc))
	require.Equal(t, 45*time.Second, jc.RequestTimeout.Duration)
	require.Nil(t, jc.ServerURL)
}

func TestParseJsonFromFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = file.WriteString(`{"server_url": "https://vault.example", "keystore_path": "/tmp/keys.db"}`)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	oldArgs := os.Args
	os.Args = []string{"cli", "-c", file.Name()}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://vault.example", cfg.ServerURL)
	require.Equal(t, "/tmp/keys.db", cfg.KeystorePath)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout, "absent fields keep defaults")
}
