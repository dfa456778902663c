package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.False(t, cfg.NER.Enabled)
	assert.Equal(t, 5*time.Second, cfg.NER.Timeout)
	assert.Equal(t, uint32(5), cfg.NER.MaxFailures)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Empty(t, cfg.Detection.GazetteerFile)
	assert.Empty(t, cfg.Export.FontFile)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 8080
rate_limit:
  enabled: true
  limit: 10
  window: 30s
ner:
  enabled: true
  base_url: http://ner:8001
  timeout: 2s
  fail_open: true
detection:
  gazetteer_file: /etc/trustmask/gazetteer.yaml
`)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("NER_MAX_FAILURES", "2")

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Limit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.True(t, cfg.NER.Enabled)
	assert.Equal(t, "http://ner:8001", cfg.NER.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.NER.Timeout)
	assert.Equal(t, uint32(2), cfg.NER.MaxFailures)
	assert.True(t, cfg.NER.FailOpen)
	assert.Equal(t, "/etc/trustmask/gazetteer.yaml", cfg.Detection.GazetteerFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"auth without secret", "server:\n  auth_enabled: true\n"},
		{"rate limit without window", "rate_limit:\n  enabled: true\n  window: 0s\n"},
		{"tls without cert", "server:\n  tls:\n    enabled: true\n"},
		{"malformed yaml", "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(viper.New(), writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestBuildServerTLSConfig_Disabled(t *testing.T) {
	cfg, err := BuildServerTLSConfig(TLSConfig{})
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestBuildServerTLSConfig_MissingFiles(t *testing.T) {
	_, err := BuildServerTLSConfig(TLSConfig{Enabled: true, CertFile: "missing.pem", KeyFile: "missing.key"})
	assert.Error(t, err)
}
