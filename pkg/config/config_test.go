package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, EnvDev, c.Env)
	require.Equal(t, 5000, c.Server.Port)
	require.Equal(t, 7*24*time.Hour, c.Auth.TokenTTL)
	require.False(t, c.Payments.Sandbox)
	require.False(t, c.Auth.AllowQueryUserID)
	require.False(t, c.Entitlement.CheckExpiry)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")
	t.Setenv("APP_PAYMENTS_SANDBOX", "true")
	t.Setenv("APP_AUTH_ALLOW_QUERY_USER_ID", "true")

	c, err := New()
	require.NoError(t, err)
	require.True(t, c.Payments.Sandbox)
	require.True(t, c.QueryUserIDFallback())
}

func TestNew_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")
	t.Setenv("APP_ENV", "prod")

	_, err := New()
	require.Error(t, err)
}

func TestNew_ReadsExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 6000\npayments:\n  sandbox: true\n"), 0o600))
	t.Setenv("APP_CONFIG_FILE", path)

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, 6000, c.Server.Port)
	require.True(t, c.Payments.Sandbox)
}

func TestNew_BrokenFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [port: 6000\n"), 0o600))
	t.Setenv("APP_CONFIG_FILE", path)

	_, err := New()
	require.ErrorContains(t, err, "failed to read config")

	t.Setenv("APP_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = New()
	require.Error(t, err)
}

func TestQueryUserIDFallback_NeverInProd(t *testing.T) {
	c := &Config{Env: EnvProd, Auth: AuthConfig{AllowQueryUserID: true}}
	require.False(t, c.QueryUserIDFallback())

	c.Env = EnvDev
	require.True(t, c.QueryUserIDFallback())

	var nilCfg *Config
	require.False(t, nilCfg.QueryUserIDFallback())
}

func TestLocation(t *testing.T) {
	require.Equal(t, time.UTC, (&Config{}).Location())
	require.Equal(t, time.UTC, (&Config{Entitlement: EntitlementConfig{Timezone: "Not/AZone"}}).Location())

	loc := (&Config{Entitlement: EntitlementConfig{Timezone: "Asia/Ho_Chi_Minh"}}).Location()
	require.Equal(t, "Asia/Ho_Chi_Minh", loc.String())
}
