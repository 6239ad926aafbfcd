package lint

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gnolang/depwarn/internal"
	tt "github.com/gnolang/depwarn/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no configuration path is given.
const DefaultConfigPath = ".depwarn.yaml"

// Config is the content of a depwarn configuration file.
type Config struct {
	Name   string               `yaml:"name" toml:"name"`
	Output OutputConfig         `yaml:"output,omitempty" toml:"output,omitempty"`
	Rules  []tt.DeprecationRule `yaml:"rules,omitempty" toml:"rules,omitempty"`
	Ignore IgnoreConfig         `yaml:"ignore,omitempty" toml:"ignore,omitempty"`
}

type OutputConfig struct {
	// Deprecations is the file deprecation lines are appended to.
	// Empty means standard error.
	Deprecations string `yaml:"deprecations,omitempty" toml:"deprecations,omitempty"`
}

type IgnoreConfig struct {
	Paths []string `yaml:"paths,omitempty" toml:"paths,omitempty"`
	Funcs []string `yaml:"funcs,omitempty" toml:"funcs,omitempty"`
}

// DefaultConfig returns a configuration listing the built-in rules.
func DefaultConfig() Config {
	return Config{
		Name:  "depwarn",
		Rules: internal.DefaultRules(),
	}
}

// LoadConfig reads a YAML or, for a ".toml" path, TOML configuration.
// A missing file yields an empty configuration.
func LoadConfig(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		configurationPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configurationPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}

	if isTOML(configurationPath) {
		if _, err := toml.Decode(string(data), &config); err != nil {
			return config, fmt.Errorf("%s: failed to parse TOML: %w", configurationPath, err)
		}
		return config, nil
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("%s: failed to parse YAML: %w", configurationPath, err)
	}
	return config, nil
}

// WriteConfig writes config to path, as TOML when the path ends in ".toml".
func WriteConfig(path string, config Config) error {
	var (
		d   []byte
		err error
	)
	if isTOML(path) {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(config)
		d = buf.Bytes()
	} else {
		d, err = yaml.Marshal(config)
	}
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
