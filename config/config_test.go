package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the platform config dir at a temp dir and clears the
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("LIIGA_API_DOMAIN", "")
	t.Setenv("LIIGA_LOG_FILE", "")
	t.Setenv("LIIGA_HTTP_TIMEOUT", "")
	return dir
}

func TestNormalizeDomain(t *testing.T) {
	assert.Equal(t, "https://api.example.com", NormalizeDomain("api.example.com"))
	assert.Equal(t, "https://api.example.com", NormalizeDomain("http://api.example.com"))
	assert.Equal(t, "https://api.example.com", NormalizeDomain("https://api.example.com"))
	assert.Equal(t, "https://api.example.com", NormalizeDomain("  api.example.com  "))

	// Placeholders must survive untouched so the API layer can refuse them.
	assert.Equal(t, "", NormalizeDomain(""))
	assert.Equal(t, "placeholder", NormalizeDomain("placeholder"))
	assert.Equal(t, "test", NormalizeDomain("test"))
	assert.Equal(t, "unset", NormalizeDomain("unset"))
}

func TestHasAPIDomain(t *testing.T) {
	assert.True(t, Config{APIDomain: "https://api.example.com"}.HasAPIDomain())
	assert.False(t, Config{}.HasAPIDomain())
	assert.False(t, Config{APIDomain: "placeholder"}.HasAPIDomain())
	assert.False(t, Config{APIDomain: " TEST "}.HasAPIDomain())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIDomain)
	assert.Equal(t, DefaultHTTPTimeoutSeconds, cfg.HTTPTimeoutSeconds)
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, configDirName, configFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(
		"api_domain = \"http://api.example.com\"\nhttp_timeout_seconds = 10\n",
	), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIDomain)
	assert.Equal(t, 10, cfg.HTTPTimeoutSeconds)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, configDirName, configFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("api_domain = \"https://file.example.com\"\n"), 0o644))
	t.Setenv("LIIGA_API_DOMAIN", "env.example.com")
	t.Setenv("LIIGA_HTTP_TIMEOUT", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIDomain)
	assert.Equal(t, 5, cfg.HTTPTimeoutSeconds)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, configDirName, configFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("api_domain = [broken"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)

	in := Config{APIDomain: "https://api.example.com", LogFilePath: "/tmp/liiga.log", HTTPTimeoutSeconds: 20}
	require.NoError(t, in.Save())

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPromptAPIDomain(t *testing.T) {
	isolate(t)

	var out strings.Builder
	cfg, err := PromptAPIDomain(strings.NewReader("api.example.com\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIDomain)
	assert.Contains(t, out.String(), "Enter API domain")

	// The answer is persisted for the next run.
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", loaded.APIDomain)
}

func TestPromptAPIDomainEmptyInput(t *testing.T) {
	isolate(t)

	var out strings.Builder
	_, err := PromptAPIDomain(strings.NewReader("\n"), &out)
	assert.Error(t, err)
}
