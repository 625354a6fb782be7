package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadProductionRefusesMemorySessions(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("CORS_ORIGINS", "https://etiquetas.docesmara.com.br")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_BACKEND")
}

func TestLoadProductionRequiresOrigins(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_BACKEND", "postgres")
	// CORS_ORIGINS deliberately unset: the localhost default is dev-only,
	// so production must refuse to boot instead of serving it.
	t.Setenv("CORS_ORIGINS", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS_ORIGINS")
}

func TestLoadProductionRefusesWildcardOrigins(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_BACKEND", "postgres")
	t.Setenv("CORS_ORIGINS", "*")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS_ORIGINS")
}

func TestLoadInvalidSessionBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "cookie")

	_, err := Load()

	require.Error(t, err)
}

func TestDSNBuildsURLFromParts(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		User:     "etiquetas",
		Password: "p@ss:word",
		Name:     "etiquetas",
	}

	assert.Equal(t, "postgres://etiquetas:p%40ss%3Aword@db:5432/etiquetas?sslmode=disable", d.DSN())
}

func TestDSNOverrideWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@elsewhere:5433/other")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@elsewhere:5433/other", cfg.Database.DSN())
}

func TestSplitOriginsTrimsAndDropsEmpty(t *testing.T) {
	origins := splitOrigins(" https://a.com , ,https://b.com")

	assert.Equal(t, []string{"https://a.com", "https://b.com"}, origins)
}
