package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "0 8 * * *", cfg.BudgetAlertSchedule)
	assert.True(t, cfg.BudgetCheckOnStart)
	assert.False(t, cfg.CORSAllowCredentials())
	assert.False(t, cfg.AlertsEnabled())
}

func TestNewConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewConfig()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestNewConfig_RejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("TOKEN_TTL", "soon")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_Lists(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SMTP_HOST", "smtp.example")
	t.Setenv("ALERT_RECIPIENTS", "owner@salon.example")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.CORSAllowCredentials())
	assert.True(t, cfg.AlertsEnabled())
}

func TestNewConfig_BudgetCheckOnStart(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("BUDGET_CHECK_ON_START", "false")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.False(t, cfg.BudgetCheckOnStart)

	t.Setenv("BUDGET_CHECK_ON_START", "sometimes")
	_, err = NewConfig()
	assert.Error(t, err)
}

func TestCORSAllowCredentials(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		want    bool
	}{
		{"wildcard", []string{"*"}, false},
		{"wildcard among origins", []string{"https://a.example", "*"}, false},
		{"empty", nil, false},
		{"explicit origins", []string{"https://salon.example"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CORSOrigins: tt.origins}
			assert.Equal(t, tt.want, cfg.CORSAllowCredentials())
		})
	}
}
