package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 30, cfg.Share.DefaultExpiryDays)
	assert.Equal(t, "gateway", cfg.AI.Provider)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestFromViper_EnvOverrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("SHARE_DEFAULT_EXPIRY_DAYS", 7)
	v.Set("PUBLIC_BASE_URL", "https://notas.example.pt/")
	v.Set("S3_BUCKET", "notas")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 7, cfg.Share.DefaultExpiryDays)
	assert.Equal(t, "https://notas.example.pt", cfg.HTTP.PublicBaseURL, "se elimina la barra final")
	assert.True(t, cfg.Storage.Enabled())
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("AI_PROVIDER", "ollama")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("SHARE_DEFAULT_EXPIRY_DAYS", 0)
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("DB_MAX_CONNS", "2")
	v.Set("DB_MIN_CONNS", "5")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "notas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/notas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
