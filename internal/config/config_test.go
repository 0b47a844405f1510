package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validConfig = `[files]
".py" = "python {path}"
".sh" = "sh \"{path}\""

[languages]
rust = "cargo script {path}"

[projects]
node = "npm start"
`

func TestLoadValidConfig(t *testing.T) {
	path := writeTestConfig(t, t.TempDir(), "runner.toml", validConfig)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "python {path}", cfg.Files[".py"])
	assert.Equal(t, `sh "{path}"`, cfg.Files[".sh"])
	assert.Equal(t, "cargo script {path}", cfg.Languages["rust"])
	assert.Equal(t, "npm start", cfg.Projects["node"])
}

func TestMissingSectionsAreEmpty(t *testing.T) {
	// The two-section shape without [projects] is valid.
	path := writeTestConfig(t, t.TempDir(), "runner.toml", `[languages]
py = "python {path}"

[files]
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Projects)
	assert.Empty(t, cfg.Projects)
	assert.Empty(t, cfg.Files)
	assert.Equal(t, "python {path}", cfg.Languages["py"])
}

func TestEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil, TOML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Files)
	assert.Empty(t, cfg.Languages)
	assert.Empty(t, cfg.Projects)
}

func TestInvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed syntax", "[files\n\".py\" = \"python\""},
		{"section of wrong type", "files = 3\n"},
		{"value of wrong type", "[files]\n\".py\" = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestConfig(t, t.TempDir(), "runner.toml", tt.content)
			_, err := LoadFrom(path)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "want *ConfigError, got %T", err)
			assert.Equal(t, path, cfgErr.Path)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFrom("/nonexistent/path/runner.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/path/runner.toml")

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoadYAML(t *testing.T) {
	path := writeTestConfig(t, t.TempDir(), "runner.yaml", `files:
  .py: python {path}
projects:
  rust: cargo run
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "python {path}", cfg.Files[".py"])
	assert.Equal(t, "cargo run", cfg.Projects["rust"])
	assert.Empty(t, cfg.Languages)
}

func TestLoadYAMLWrongShape(t *testing.T) {
	path := writeTestConfig(t, t.TempDir(), "runner.yml", "files:\n  - python\n")
	_, err := LoadFrom(path)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeTestConfig(t, t.TempDir(), "custom.toml", validConfig)
	t.Setenv(envOverride, path)

	assert.Equal(t, path, Candidates()[0])
	assert.Equal(t, path, DefaultPath())

	cfg, found, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, found)
	assert.Equal(t, "npm start", cfg.Projects["node"])
}

func TestLoadRelativeFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	writeTestConfig(t, filepath.Join(dir, "config"), "runner.toml", validConfig)
	t.Setenv(envOverride, "")
	t.Chdir(dir)

	cfg, found, err := Load()
	require.NoError(t, err)
	assert.Equal(t, fallbackPath, found)
	assert.Equal(t, "python {path}", cfg.Files[".py"])
}

func TestLoadInvalidCandidateIsFatal(t *testing.T) {
	path := writeTestConfig(t, t.TempDir(), "runner.toml", "files = [")
	t.Setenv(envOverride, path)

	_, found, err := Load()
	require.Error(t, err)
	assert.Equal(t, path, found)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLoadNothingFound(t *testing.T) {
	t.Setenv(envOverride, "")
	t.Chdir(t.TempDir())

	_, _, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), fallbackPath)
}

func TestTemplateConfigParses(t *testing.T) {
	cfg, err := Parse([]byte(TemplateConfig()), TOML)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Files)
	assert.NotEmpty(t, cfg.Languages)
	assert.Equal(t, "cargo run", cfg.Projects["rust"])
}
