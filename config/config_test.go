package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "data/projects.json", cfg.Store.ProjectsFile)
	assert.False(t, cfg.Store.StrictValidation)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "admin@portfolio.com", cfg.Auth.AdminEmail)
	assert.False(t, cfg.Auth.ProtectWrites)
	assert.Equal(t, "portfolio:projects", cfg.Redis.Key)
	assert.Empty(t, cfg.Backup.Schedule)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.dev,https://b.dev")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("PROJECTS_STRICT_VALIDATION", "true")
	t.Setenv("BACKUP_SCHEDULE", "0 3 * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Store.StrictValidation)
	assert.Equal(t, "0 3 * * *", cfg.Backup.Schedule)
}

func TestLoad_BadValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TOKEN_TTL", "a day")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			Store:  StoreConfig{Backend: BackendFile, ProjectsFile: "p.json"},
			Redis:  RedisConfig{Addr: "localhost:6379"},
			Auth:   AuthConfig{JWTSecret: DefaultJWTSecret, TokenTTL: time.Hour},
			Backup: BackupConfig{Dir: "b"},
			App:    AppConfig{Environment: "development"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }, "PORT"},
		{"negative rps", func(c *Config) { c.Server.RateLimitRPS = -1 }, "RATE_LIMIT_RPS"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "s3" }, "STORE_BACKEND"},
		{"file backend without path", func(c *Config) { c.Store.ProjectsFile = "" }, "PROJECTS_FILE"},
		{"redis backend without addr", func(c *Config) { c.Store.Backend = BackendRedis; c.Redis.Addr = "" }, "REDIS_ADDR"},
		{"postgres backend without host", func(c *Config) { c.Store.Backend = BackendPostgres }, "DB_HOST"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "TOKEN_TTL"},
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET"},
		{"default secret in production", func(c *Config) { c.App.Environment = "Production" }, "JWT_SECRET"},
		{"backup without dir", func(c *Config) { c.Backup.Schedule = "@daily"; c.Backup.Dir = "" }, "BACKUP_DIR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
