// Package config loads the per-project tone.yaml file found at the source
// root, carrying extra imports for generated sources and tuning for the
// output layout and watch mode.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up at the source root.
const FileName = "tone.yaml"

// Project represents the per-source-root configuration
type Project struct {
	Imports []string `yaml:"imports,omitempty"`
	// Listeners names built-in compilation listeners to register; see
	// ListenersOr for resolution.
	Listeners []string      `yaml:"listeners,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Render    RenderConfig  `yaml:"render,omitempty"`
	Watch     WatchConfig   `yaml:"watch,omitempty"`
	Metrics   MetricsConfig `yaml:"metrics,omitempty"`
}

// OutputConfig controls where generated sources land relative to the output root
type OutputConfig struct {
	// SubPrefix is the directory (and Java package root) under the output
	// root that receives every generated source.
	SubPrefix string `yaml:"sub_prefix,omitempty"`
	// ViewsMarker is the path segment identifying the views root inside an
	// absolute source path, used for single-file invalidation.
	ViewsMarker string `yaml:"views_marker,omitempty"`
}

// RenderConfig tunes the built-in renderer
type RenderConfig struct {
	// Extends names an optional superclass for every generated type.
	Extends string `yaml:"extends,omitempty"`
}

// WatchConfig tunes watch mode
type WatchConfig struct {
	// Debounce is the quiet window applied to bursts of file events before
	// a rebuild is triggered.
	Debounce Duration `yaml:"debounce,omitempty"`
	// Resync, when non-zero, schedules a periodic full rebuild as a safety
	// net against missed file events.
	Resync Duration `yaml:"resync,omitempty"`
}

// MetricsConfig toggles the Prometheus recorder
type MetricsConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// Duration wraps time.Duration with YAML support for values like "300ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no tone.yaml exists.
func Default() *Project {
	p := &Project{}
	p.applyDefaults()
	return p
}

func (p *Project) applyDefaults() {
	if p.Output.SubPrefix == "" {
		p.Output.SubPrefix = "templates"
	}
	if p.Output.ViewsMarker == "" {
		p.Output.ViewsMarker = filepath.Join("src", "main", "views")
	}
	if p.Watch.Debounce <= 0 {
		p.Watch.Debounce = Duration(300 * time.Millisecond)
	}
}

// Load reads tone.yaml from the source root. A missing file yields the
// defaults; a malformed file is an error. Environment variables referenced
// as ${VAR} in the file are expanded after .env loading.
func Load(sourceRoot string) (*Project, error) {
	loadEnvFiles()

	path := filepath.Join(sourceRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	var p Project
	if err := yaml.Unmarshal([]byte(expanded), &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	p.applyDefaults()
	return &p, nil
}

// Write serializes the configuration to the source root, for `tonegen init`.
func (p *Project) Write(sourceRoot string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(sourceRoot, FileName), data, 0o644)
}
