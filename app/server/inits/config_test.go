package inits

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("DB_CONN", "host=localhost user=postgres")

	cfg, err := Config()
	require.NoError(t, err)

	assert.Equal(t, ":1323", cfg.System.Listen)
	assert.False(t, cfg.IsProd())
	assert.Empty(t, cfg.Auth.APIURL)
	assert.Equal(t, "password", cfg.Security.DefaultAdminPassword)
	assert.Equal(t, uint32(1), cfg.Security.HashTimeCost)
	assert.False(t, cfg.Policy.OpenRegistration)
	assert.False(t, cfg.Policy.DropDisallowedFields)
	assert.False(t, cfg.Policy.DeleteAdminOnly)
}

func TestConfig_Explicit(t *testing.T) {
	t.Setenv("DB_CONN", "host=localhost user=postgres")
	t.Setenv("MODE", "production")
	t.Setenv("LISTEN", ":8080")
	t.Setenv("AUTH_API_URL", "http://auth.internal/decode")
	t.Setenv("POLICY_OPEN_REGISTRATION", "true")

	cfg, err := Config()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, ":8080", cfg.System.Listen)
	assert.Equal(t, "http://auth.internal/decode", cfg.Auth.APIURL)
	assert.True(t, cfg.Policy.OpenRegistration)
}

func TestConfig_MissingDBConn(t *testing.T) {
	t.Setenv("DB_CONN", "") // 注册恢复逻辑
	os.Unsetenv("DB_CONN")

	_, err := Config()
	require.Error(t, err)
}
