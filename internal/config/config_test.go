package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, StrategyToken, cfg.Auth.Strategy)
	assert.Equal(t, "_session_id", cfg.Auth.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "calendar")
	t.Setenv("AUTH_STRATEGY", StrategySession)
	t.Setenv("AUTH_SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, StrategySession, cfg.Auth.Strategy)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Contains(t, cfg.Database.DSN(), "dbname=calendar")
}

func TestLoad_JWTRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_STRATEGY", StrategyJWT)

	_, err := Load()
	assert.ErrorIs(t, err, ErrJWTSecretRequired)

	t.Setenv("JWT_SECRET", "test-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "token", cfg: Config{Auth: Auth{Strategy: StrategyToken}, BcryptCost: 10}},
		{name: "session", cfg: Config{Auth: Auth{Strategy: StrategySession}, BcryptCost: 10}},
		{name: "unknown strategy", cfg: Config{Auth: Auth{Strategy: "cookie"}, BcryptCost: 10}, wantErr: true},
		{name: "bcrypt cost too low", cfg: Config{Auth: Auth{Strategy: StrategyToken}, BcryptCost: 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
