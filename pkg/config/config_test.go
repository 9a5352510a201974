package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, 4*time.Hour, cfg.Cart.IdleTimeout())
	assert.Equal(t, config.AIProviderNone, cfg.AI.Provider)
	assert.Equal(t, config.AlertsConfig{LowStockThreshold: 5, MarginWindowDays: 30, MinMarginPercent: 10}, cfg.Alerts)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/tienda.db")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("CART_IDLE_MINUTES", "30")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/tienda.db", cfg.Store.SQLitePath)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.AIProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 30*time.Minute, cfg.Cart.IdleTimeout())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "mysql")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_AvisosInvalidos(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALERT_MARGIN_DAYS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/word", DBName: "kirana", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%2Fword@db:5432/kirana?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
