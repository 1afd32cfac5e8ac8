package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "CLIENT_ORIGIN", "ROUND_SECONDS", "WORDS_CATALOG_FILE", "DAILY_SALT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 30, c.RoundSeconds)
	assert.Equal(t, "", c.CatalogFile)
	assert.Equal(t, 20, c.RateLimitRPS)
	assert.Equal(t, 40, c.RateLimitBurst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ROUND_SECONDS", "45")
	t.Setenv("WORDS_CATALOG_FILE", "/tmp/catalog.yaml")
	t.Setenv("DAILY_SALT", "pepper")

	c := Load()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 45, c.RoundSeconds)
	assert.Equal(t, "/tmp/catalog.yaml", c.CatalogFile)
	assert.Equal(t, "pepper", c.DailySalt)
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("ROUND_SECONDS", "soon")
	t.Setenv("RATE_LIMIT_RPS", "-3")
	c := Load()
	assert.Equal(t, 30, c.RoundSeconds)
	assert.Equal(t, 20, c.RateLimitRPS)
}
