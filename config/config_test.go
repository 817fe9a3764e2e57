package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "Development needs nothing",
			config:  Config{GoEnv: "development"},
			wantErr: false,
		},
		{
			name: "Production with full config",
			config: Config{
				GoEnv:       "production",
				DatabaseURL: "postgresql://user:pass@db:5432/restaurant",
				Auth0Domain: "restaurant.auth0.com",
			},
			wantErr: false,
		},
		{
			name: "Production without database URL",
			config: Config{
				GoEnv:       "production",
				Auth0Domain: "restaurant.auth0.com",
			},
			wantErr: true,
		},
		{
			name: "Production without Auth0 domain",
			config: Config{
				GoEnv:       "production",
				DatabaseURL: "postgresql://user:pass@db:5432/restaurant",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	prod := Config{GoEnv: "production"}
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsTest())
	assert.False(t, prod.IsDevelopment())

	test := Config{GoEnv: "test"}
	assert.True(t, test.IsTest())

	dev := Config{GoEnv: "development"}
	assert.True(t, dev.IsDevelopment())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("RESTAURANT_TEST_KEY", "value")
	assert.Equal(t, "value", getEnv("RESTAURANT_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("RESTAURANT_MISSING_KEY", "fallback"))
}
