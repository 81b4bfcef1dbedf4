package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 5000, cfg.Web.ListenPort)
	assert.False(t, cfg.Web.Debug)
	assert.False(t, cfg.Web.SSL)
	assert.Equal(t, "/metrics", cfg.Web.MetricsPath)
	assert.Equal(t, 10*time.Second, cfg.Web.ShutdownTimeout)
	assert.Empty(t, cfg.Web.CORS.AllowOrigins)
	assert.Equal(t, "127.0.0.1:5000", cfg.Web.Addr())
	assert.NoError(t, cfg.Web.Validate())
}

func TestDefaultTrustedProxiesNotShared(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Web.TrustedProxies[0] = "203.0.113.1"

	assert.Equal(t, "127.0.0.1", DefaultTrustedProxies[0])
}

func TestWebConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *WebConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(c *WebConfig) {}},
		{name: "port zero", mutate: func(c *WebConfig) { c.ListenPort = 0 }, wantErr: ErrInvalidPort},
		{name: "port too high", mutate: func(c *WebConfig) { c.ListenPort = 70000 }, wantErr: ErrInvalidPort},
		{name: "port max", mutate: func(c *WebConfig) { c.ListenPort = 65535 }},
		{name: "ssl without files", mutate: func(c *WebConfig) { c.SSL = true }, wantErr: ErrSSLFiles},
		{name: "ssl without key", mutate: func(c *WebConfig) { c.SSL = true; c.CertFile = "cert.pem" }, wantErr: ErrSSLFiles},
		{name: "ssl with files", mutate: func(c *WebConfig) { c.SSL = true; c.CertFile = "cert.pem"; c.KeyFile = "key.pem" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig().Web
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAddrAndProtocol(t *testing.T) {
	cfg := WebConfig{Host: "::1", ListenPort: 8443, SSL: true}
	assert.Equal(t, "[::1]:8443", cfg.Addr())
	assert.Equal(t, "https", cfg.Protocol())

	cfg.SSL = false
	assert.Equal(t, "http", cfg.Protocol())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	def := NewDefaultConfig()
	assert.Equal(t, def.Web.Host, cfg.Web.Host)
	assert.Equal(t, def.Web.ListenPort, cfg.Web.ListenPort)
	assert.Equal(t, def.Web.TrustedProxies, cfg.Web.TrustedProxies)
	assert.Equal(t, def.Web.IdleTimeout, cfg.Web.IdleTimeout)
	assert.Equal(t, AppVersion, cfg.AppVersion)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hellopage.yaml")
	content := `
tracing: true
web:
  host: 0.0.0.0
  listen_port: 9000
  debug: true
  shutdown_timeout: 3s
  cors:
    allow_origins:
      - https://example.org
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Tracing)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, 9000, cfg.Web.ListenPort)
	assert.True(t, cfg.Web.Debug)
	assert.Equal(t, 3*time.Second, cfg.Web.ShutdownTimeout)
	assert.Equal(t, []string{"https://example.org"}, cfg.Web.CORS.AllowOrigins)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultMetricsPath, cfg.Web.MetricsPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("HELLOPAGE_PORT", "8081")
	t.Setenv("HELLOPAGE_DEBUG", "true")
	t.Setenv("HELLOPAGE_WEB_READ_TIMEOUT", "2s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Web.ListenPort)
	assert.True(t, cfg.Web.Debug)
	assert.Equal(t, 2*time.Second, cfg.Web.ReadTimeout)
}

func TestLoadEnvironmentLongFormWins(t *testing.T) {
	t.Setenv("HELLOPAGE_PORT", "8081")
	t.Setenv("HELLOPAGE_WEB_LISTEN_PORT", "8082")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.Web.ListenPort)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hellopage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("web:\n  host: 10.0.0.1\n"), 0644))
	t.Setenv("HELLOPAGE_HOST", "10.0.0.2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2", cfg.Web.Host)
}
