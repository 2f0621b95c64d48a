package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultScenariosDir is used when neither flags, environment, nor a
// config file name a scenarios directory.
const DefaultScenariosDir = "scenarios"

// envPrefix namespaces the environment variables read into the config.
// SCOTTQL_SCENARIOS_DIR maps to the scenarios_dir key and so on.
const envPrefix = "SCOTTQL_"

// Config holds optional settings read from scottql.yaml and the
// environment. Flags take precedence over everything here.
type Config struct {
	ScenariosDir string `koanf:"scenarios_dir"`
	Format       string `koanf:"format"`
	Verbose      bool   `koanf:"verbose"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > scottql.yaml > scottql.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"scottql.yaml", "scottql.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig loads configuration from an optional YAML file and
// SCOTTQL_* environment variables.
// Precedence (highest to lowest): env vars > config file > defaults.
func LoadConfig(cfgFile string) (*Config, error) {
	k := koanf.New(".")

	cfg := &Config{
		ScenariosDir: DefaultScenariosDir,
		Format:       "",
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return cfg, nil
}
