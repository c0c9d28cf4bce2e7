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

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, time.Hour, cfg.JWT.TTL())
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Error(t, cfg.Validate(), "sin JWT_SECRET la configuración es inválida")
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secreto")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("JWT_EXPIRATION_MINUTES", "15")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "super-secreto", cfg.JWT.Secret)
	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ArchivoEnv(t *testing.T) {
	dir := t.TempDir()
	content := "JWT_SECRET=desde-archivo\nDB_NAME=bazar_test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "desde-archivo", cfg.JWT.Secret)
	assert.Equal(t, "bazar_test", cfg.DB.DBName)
}

func TestConfig_ValidateAlgoritmo(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{Secret: "s", Algorithm: "RS256", Expiration: 60}}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Algorithm = "HS384"
	assert.NoError(t, cfg.Validate())

	cfg.JWT.Expiration = 0
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "bazar", Password: "p@ss:word", DBName: "bazar", SSLMode: "disable"}
	assert.Equal(t, "postgres://bazar:p%40ss%3Aword@db:5432/bazar?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
