package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.Addr())
	assert.Equal(t, "./docs/swagger.json", cfg.HTTP.DocsPath)
	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "/providers", cfg.Backend.Routes.Suppliers)
	assert.Equal(t, 8*time.Hour, cfg.JWT.TTL())
	assert.Empty(t, cfg.Redis.Addr, "sin REDIS_ADDR las sesiones quedan en memoria")
}

func TestFromViper_EnvSobrescribe(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("BACKEND_BASE_URL", "https://api.ferreteria.test/api/")
	v.Set("HTTP_PORT", "9000")
	v.Set("BACKEND_ROUTE_PURCHASES", "/compras")
	v.Set("REDIS_DB", "oops")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://api.ferreteria.test/api", cfg.Backend.BaseURL)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "/compras", cfg.Backend.Routes.Purchases)
	assert.Equal(t, 0, cfg.Redis.DB, "valor no numérico cae al default")
}

func TestFromViper_SinSecreto(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err)
}
