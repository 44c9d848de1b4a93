package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// 空目录下没有 config.yaml, 只使用默认值
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "3000", cfg.App.HttpPort)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Rebroadcast.Enabled)
	assert.Equal(t, 100, cfg.Rebroadcast.PageSize)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.DB.Host)
	assert.Equal(t, "production", cfg.App.Env)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  env: production
  http_port: "8081"
db:
  host: db.internal
explorer:
  timeout: 3s
  base_urls:
    signet: http://localhost:3002/
rebroadcast:
  spec: "@every 1m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "8081", cfg.App.HttpPort)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, 3*time.Second, cfg.Explorer.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Explorer.CacheTTL)
	assert.Equal(t, "http://localhost:3002/", cfg.Explorer.BaseURLs["signet"])
	assert.Equal(t, "@every 1m", cfg.Rebroadcast.Spec)
	assert.Equal(t, "none", cfg.Redis.MQType)
}

func TestDBConfigURLs(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.PostgresDSN())
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", c.MigrateURL())
}
