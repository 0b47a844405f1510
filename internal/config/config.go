package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const envOverride = "CODERUNNER_CONFIG"

// fallbackPath is tried relative to the working directory when nothing is found
// next to the executable.
var fallbackPath = filepath.Join("config", "runner.toml")

// Config maps files, languages and project types to command templates.
// A loaded Config is never mutated; reloading means building a new one.
type Config struct {
	Files     map[string]string `toml:"files" yaml:"files"`
	Languages map[string]string `toml:"languages" yaml:"languages"`
	Projects  map[string]string `toml:"projects" yaml:"projects"`
}

// ConfigError reports a configuration document that could not be read or parsed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ErrNotFound is wrapped by the ConfigError returned when no candidate location holds a document.
var ErrNotFound = errors.New("no runner configuration found")

// Candidates returns the locations Load tries, in order.
func Candidates() []string {
	var paths []string
	if p := os.Getenv(envOverride); p != "" {
		paths = append(paths, p)
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "config", "runner.toml"))
	}
	return append(paths, fallbackPath)
}

// Load reads the first existing candidate. An existing but invalid document is
// an error; it does not fall through to the next candidate.
func Load() (*Config, string, error) {
	tried := Candidates()
	for _, path := range tried {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFrom(path)
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}
	return nil, "", &ConfigError{
		Err: fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(tried, ", ")),
	}
}

// LoadFrom reads configuration from the given path. Files ending in .yaml or
// .yml are decoded as YAML, everything else as TOML.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("reading: %w", err)}
	}

	cfg, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Format selects the decoder used by Parse.
type Format int

const (
	TOML Format = iota
	YAML
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return TOML
	}
}

// Parse decodes a configuration document. Missing sections become empty mappings.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
	}

	if cfg.Files == nil {
		cfg.Files = map[string]string{}
	}
	if cfg.Languages == nil {
		cfg.Languages = map[string]string{}
	}
	if cfg.Projects == nil {
		cfg.Projects = map[string]string{}
	}
	return &cfg, nil
}

// DefaultPath is where init writes the template when no override is set.
func DefaultPath() string {
	if p := os.Getenv(envOverride); p != "" {
		return p
	}
	return fallbackPath
}

// TemplateConfig returns a starter runner.toml.
func TemplateConfig() string {
	return `# Command templates. {path} is the target file, {dir} its directory.

[files]
".py"  = "python3 {path}"
".js"  = "node {path}"
".sh"  = "sh {path}"
".go"  = "go run {path}"

[languages]
ruby       = "ruby {path}"
typescript = "npx tsx {path}"

[projects]
node   = "npm start"
python = "python3 {path}"
rust   = "cargo run"
go     = "go run ."
`
}
