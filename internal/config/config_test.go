package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meshline.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
host_url   = "https://meshline.example.com"
things_url = "https://things.meshline.example.com"
token      = "file-token"
output     = "yaml"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "yaml", cfg.Output)

	// Explicit service URL wins, the rest fall back to host_url.
	assert.Equal(t, "https://things.meshline.example.com", cfg.ThingsURL)
	assert.Equal(t, "https://meshline.example.com", cfg.UsersURL)
	assert.Equal(t, "https://meshline.example.com", cfg.JournalURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
host_url = "https://meshline.example.com"
token    = "file-token"
`)

	t.Setenv("MESHLINE_TOKEN", "env-token")
	t.Setenv("MESHLINE_USERS_URL", "https://users.meshline.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "https://users.meshline.example.com", cfg.UsersURL)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost", cfg.HostURL)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadRejectsBadOutput(t *testing.T) {
	path := writeConfig(t, `
host_url = "https://meshline.example.com"
output   = "xml"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSDKConfig(t *testing.T) {
	path := writeConfig(t, `
host_url   = "https://meshline.example.com"
tls_verify = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	sdkCfg := cfg.SDKConfig()
	assert.Equal(t, "https://meshline.example.com", sdkCfg.ThingsURL)
	require.NotNil(t, sdkCfg.TLSVerify)
	assert.False(t, *sdkCfg.TLSVerify)
}
