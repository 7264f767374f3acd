package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.CSRFEnabled)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, RateLimitConfig{RPS: 1, Burst: 5}, cfg.RateLimit)
	assert.NotEmpty(t, cfg.CSRFKey)
	assert.NotEmpty(t, cfg.JWT.Secret)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CSRF_ENABLED", "true")
	t.Setenv("DB_DRIVER", "BOLT")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONTACT_RATE_RPS", "0.5")
	t.Setenv("CONTACT_RATE_BURST", "2")
	t.Setenv("JWT_EXPIRATION", "15m")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.CSRFEnabled)
	assert.Equal(t, "bolt", cfg.DB.Driver)
	assert.Equal(t, "contact.db", cfg.DB.DSN)
	assert.Equal(t, RateLimitConfig{RPS: 0.5, Burst: 2}, cfg.RateLimit)
	assert.Equal(t, 15*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestValidateProd(t *testing.T) {
	good := Config{
		Addr:    ":8080",
		CSRFKey: "0123456789abcdef0123456789abcdef",
		DB:      DBConfig{DSN: "postgres://u:p@db/contact"},
		JWT:     JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
	}
	assert.NoError(t, good.validateProd())

	short := good
	short.JWT.Secret = "short"
	assert.ErrorContains(t, short.validateProd(), "JWT_SECRET")

	tls := good
	tls.Secure = true
	assert.ErrorContains(t, tls.validateProd(), "TLS_CERT_FILE")

	noDB := good
	noDB.DB.DSN = ""
	assert.ErrorContains(t, noDB.validateProd(), "DATABASE_URL")
}
