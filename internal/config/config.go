package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ccwc/internal/measure"
	"ccwc/internal/types"

	"github.com/BurntSushi/toml"
)

//go:embed defaults.toml
var defaultsTOML []byte

// File mirrors the TOML layout of defaults.toml.
type File struct {
	Measure struct {
		Default []string
	}
	Output struct {
		Format string
	}
}

// Config is the validated configuration.
type Config struct {
	Default types.Set
	Format  string
}

// Default returns the built-in configuration.
func Default() (Config, error) {
	return Load("", nil)
}

// Load returns the built-in configuration overlaid with the TOML file at path.
// An empty path yields the built-in configuration.
func Load(path string, log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var file File

	err := toml.Unmarshal(defaultsTOML, &file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse built-in config: %w", err)
	}

	if path == "" {
		return file.validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warn("Ignoring unknown config keys", "path", path, "keys", fmt.Sprint(undecoded))
	}

	cfg, err := file.validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Debug("Config loaded", "path", path, "default", cfg.Default.String(), "format", cfg.Format)

	return cfg, nil
}

func (f File) validate() (Config, error) {
	if len(f.Measure.Default) == 0 {
		return Config{}, errors.New("config measure.default cannot be empty")
	}

	set, err := types.ParseSet(f.Measure.Default)
	if err != nil {
		return Config{}, fmt.Errorf("config measure.default: %w", err)
	}

	if !measure.ValidFormat(f.Output.Format) {
		return Config{}, fmt.Errorf("config output.format: unknown format: %s", f.Output.Format)
	}

	return Config{Default: set, Format: f.Output.Format}, nil
}
