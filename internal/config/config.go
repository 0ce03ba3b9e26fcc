// Package config loads the settings file shared by the remora commands. A
// settings file is TOML or YAML, chosen by its extension, and has a section
// for the parser and a section for the evaluation server:
//
//	[parser]
//	max_stack_depth = 100
//
//	[server]
//	listen = "localhost:8080"
//	database = "sqlite:/var/lib/remora"
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/remora/parse"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultListen is the address the server listens on when none is given.
	DefaultListen = "localhost:8080"

	// DefaultDatabase is the database connection string used when none is
	// given.
	DefaultDatabase = "inmem"
)

// Server holds settings for the evaluation server.
type Server struct {
	// Listen is the address to listen on, in ADDRESS:PORT or :PORT form.
	Listen string `toml:"listen" yaml:"listen"`

	// Database is a connection string of the form "inmem" or
	// "sqlite:DATA_DIR".
	Database string `toml:"database" yaml:"database"`
}

// Config is the complete set of settings.
type Config struct {
	Parser parse.Options `toml:"parser" yaml:"parser"`
	Server Server        `toml:"server" yaml:"server"`
}

// Default returns a Config with every setting at its default value.
func Default() Config {
	return Config{
		Server: Server{
			Listen:   DefaultListen,
			Database: DefaultDatabase,
		},
	}
}

// FillDefaults returns a new Config identical to cfg but with unset values set
// to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.Server.Listen == "" {
		newCFG.Server.Listen = DefaultListen
	}
	if newCFG.Server.Database == "" {
		newCFG.Server.Database = DefaultDatabase
	}

	return newCFG
}

// Validate returns an error if the Config has invalid field values set. Empty
// values are considered invalid; if defaults are intended to be used, call
// Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	if cfg.Parser.MaxStackDepth < 0 {
		return fmt.Errorf("parser: max_stack_depth must be non-negative; got %d", cfg.Parser.MaxStackDepth)
	}

	if cfg.Server.Listen == "" {
		return fmt.Errorf("server: listen is not set")
	}
	if !strings.Contains(cfg.Server.Listen, ":") {
		return fmt.Errorf("server: listen address %q is not in ADDRESS:PORT or :PORT format", cfg.Server.Listen)
	}
	if cfg.Server.Database == "" {
		return fmt.Errorf("server: database is not set")
	}

	return nil
}

// Load reads the settings file at path from fs. Settings not given in the file
// are set to their defaults. The loaded Config is validated before it is
// returned.
func Load(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%q: decoding TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%q: decoding YAML: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%q: settings file must end in .toml, .yaml, or .yml", path)
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%q: %w", path, err)
	}

	return cfg, nil
}
