// Package config provides the configuration loader for qsnap.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML or JSONC file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds the nearest configuration file at or above cwd and resolves it.
// Without a configuration file the defaults apply with cwd as the root.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "cwd", cwd)
	}

	configPath, found := findConfiguration(abs)
	if !found {
		l.Logger.Debug(fmt.Sprintf("no %s found, using defaults in %s", domain.ConfigFileName, abs))
		return domain.DefaultConfig(abs), nil
	}

	var file File
	if err := readConfigFile(configPath, &file); err != nil {
		return domain.Config{}, zerr.With(err, "path", configPath)
	}

	cfg := apply(domain.DefaultConfig(filepath.Dir(configPath)), &file)
	if err := validate(cfg); err != nil {
		return domain.Config{}, zerr.With(err, "path", configPath)
	}

	l.Logger.Debug(fmt.Sprintf("loaded configuration from %s", configPath))
	return cfg, nil
}

// findConfiguration walks up from dir. In one directory qsnap.yaml wins over qsnap.jsonc.
func findConfiguration(dir string) (string, bool) {
	current := dir
	for {
		for _, name := range []string{domain.ConfigFileName, domain.ConfigFileNameJSONC} {
			candidate := filepath.Join(current, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// readConfigFile reads a YAML file, or a JSONC file stripped to plain JSON, into target.
// JSONC goes through encoding/json since tab-indented JSON is not valid YAML.
func readConfigFile(configPath string, target *File) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if strings.HasSuffix(configPath, ".jsonc") {
		if err := json.Unmarshal(jsonc.ToJSON(data), target); err != nil {
			return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		}
		return nil
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.parse(raw)
}

// UnmarshalJSON parses a duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.parse(raw)
}

func (d *Duration) parse(raw string) error {
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid duration"), "value", raw)
	}
	d.Duration = parsed
	return nil
}

func apply(cfg domain.Config, file *File) domain.Config {
	if file.Host != "" {
		cfg.Host = file.Host
	}
	if file.Cache != "" {
		cfg.CacheFile = file.Cache
	}
	if file.Artifacts != "" {
		cfg.ArtifactDir = file.Artifacts
	}
	if file.Renderer != "" {
		cfg.Renderer = domain.RendererKind(strings.ToLower(file.Renderer))
	}
	if len(file.Documents) > 0 {
		cfg.Documents = file.Documents
	}
	if file.Ignore != nil {
		cfg.Ignore = append(file.Ignore, domain.StateDirName)
	}
	if file.Debounce != nil {
		cfg.Debounce = file.Debounce.Duration
	}
	if b := file.Browser; b != nil {
		if b.Bin != "" {
			cfg.Browser.Bin = b.Bin
		}
		if b.Headless != nil {
			cfg.Browser.Headless = *b.Headless
		}
		if b.Timeout != nil {
			cfg.Browser.Timeout = b.Timeout.Duration
		}
		if b.Width != nil {
			cfg.Browser.Width = *b.Width
		}
		if b.Height != nil {
			cfg.Browser.Height = *b.Height
		}
		if b.Selector != nil {
			cfg.Browser.Selector = *b.Selector
		}
		if b.Embed != nil {
			cfg.Browser.Embed = *b.Embed
		}
	}
	return cfg
}

func validate(cfg domain.Config) error {
	switch cfg.Renderer {
	case domain.RendererBrowser, domain.RendererSVG:
	default:
		return zerr.With(domain.ErrUnknownRenderer, "renderer", string(cfg.Renderer))
	}

	if strings.ContainsAny(cfg.Host, "/#?: ") {
		return zerr.With(domain.ErrConfigInvalid, "host", cfg.Host)
	}
	if cfg.Browser.Width <= 0 || cfg.Browser.Height <= 0 {
		return zerr.With(zerr.With(domain.ErrConfigInvalid, "width", cfg.Browser.Width), "height", cfg.Browser.Height)
	}
	if cfg.Browser.Timeout <= 0 {
		return zerr.With(domain.ErrConfigInvalid, "timeout", cfg.Browser.Timeout.String())
	}
	if cfg.Debounce < 0 {
		return zerr.With(domain.ErrConfigInvalid, "debounce", cfg.Debounce.String())
	}
	for _, pattern := range cfg.Documents {
		if _, err := filepath.Match(strings.TrimPrefix(pattern, "**/"), ""); err != nil {
			return zerr.With(domain.ErrConfigInvalid, "documents", pattern)
		}
	}
	return nil
}
