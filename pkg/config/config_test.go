package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPadrao(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gestaoescolar", cfg.App.Name)
	assert.Equal(t, 30, cfg.Estoque.DiasAlertaValidade)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL())
}

func TestLoad_EnvTemPrioridade(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("ESTOQUE_DIAS_ALERTA_VALIDADE", "15")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8088", cfg.HTTP.Addr())
	assert.True(t, cfg.Redis.Enabled())
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.0001)
	assert.Equal(t, 15, cfg.Estoque.DiasAlertaValidade)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_ProducaoExigeSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "escolar", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/escolar?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}
