package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name        string
		secret      string
		hours       int
		wantErr     bool
		errContains string
	}{
		{name: "valid", secret: "test-secret-key-long", hours: 24},
		{name: "minimum expiration 1 hour", secret: "test-secret-key-long", hours: 1},
		{name: "empty secret", secret: "", hours: 24, wantErr: true, errContains: "JWT_SECRET is required"},
		{name: "short secret", secret: "short", hours: 24, wantErr: true, errContains: "at least 16 characters"},
		{name: "zero expiration", secret: "test-secret-key-long", hours: 0, wantErr: true, errContains: "at least 1 hour"},
		{name: "negative expiration", secret: "test-secret-key-long", hours: -5, wantErr: true, errContains: "at least 1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewJWTConfig(tt.secret, tt.hours)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, time.Duration(tt.hours)*time.Hour, cfg.Expiration())
		})
	}
}

func TestConfig_JWT(t *testing.T) {
	cfg := validConfig()

	_, err := cfg.JWT()
	assert.Error(t, err, "no secret configured")

	cfg.Auth.JWTSecret = "test-secret-key-long"
	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	assert.Equal(t, 24, jwtCfg.ExpirationHours)
}
