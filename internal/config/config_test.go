package config

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFolder(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(dir, "public.yaml"), []byte(public), 0644))
	require.NoError(t, os.WriteFile(path.Join(dir, "private.yaml"), []byte(private), 0644))
	return dir
}

func TestMustLoad(t *testing.T) {
	public := `
listen_addr: ":9000"
environment: "production"
log_level: "warn"
page_size: 25
media_root: "/var/lib/khidma/media"
access_token_ttl: 1h
refresh_token_ttl: 48h
allowed_origins:
  - "https://admin.example.com"
`
	private := `
pg:
  host: "db"
  port: 5432
  user: "khidma"
  password: "secret"
  dbname: "khidma"
identity:
  base_url: "http://auth:9999"
  service_key: "service-key"
  jwt_secret: "jwt-secret"
`
	cfg := MustLoad(writeConfigFolder(t, public, private))

	assert.Equal(t, ":9000", cfg.Public.ListenAddr)
	assert.Equal(t, "warn", cfg.Public.LogLevel)
	assert.Equal(t, 25, cfg.Public.PageSize)
	assert.Equal(t, "/var/lib/khidma/media", cfg.Public.MediaRoot)
	assert.Equal(t, time.Hour, cfg.Public.AccessTokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.Public.RefreshTokenTTL)
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.Public.AllowedOrigins)
	assert.Equal(t, "db", cfg.Private.Pg.Host)
	assert.Equal(t, "http://auth:9999", cfg.Private.Identity.BaseURL)
	assert.True(t, cfg.SecureCookies())
}

func TestMustLoadDefaults(t *testing.T) {
	cfg := MustLoad(writeConfigFolder(t, "environment: \"development\"\n", "{}\n"))

	assert.Equal(t, ":8080", cfg.Public.ListenAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Public.AllowedOrigins)
	assert.Equal(t, 10, cfg.Public.PageSize)
	assert.Equal(t, "media", cfg.Public.MediaRoot)
	assert.Equal(t, int64(10<<20), cfg.Public.MaxUploadBytes)
	assert.Equal(t, float64(1), cfg.Public.LoginRPS)
	assert.Equal(t, 5, cfg.Public.LoginBurst)
	assert.Equal(t, 7*24*time.Hour, cfg.Public.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Public.RefreshTokenTTL)
	assert.False(t, cfg.SecureCookies())
}

func TestMustLoadMissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}

func TestMustLoadMalformedYaml(t *testing.T) {
	dir := writeConfigFolder(t, "listen_addr: [unclosed\n", "{}\n")
	assert.Panics(t, func() { MustLoad(dir) })
}
