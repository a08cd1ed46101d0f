package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robottwo/trigline/pkg/trigger"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTrigger is returned by Find when no settings exist for a trigger.
var ErrUnknownTrigger = errors.New("trigger not configured")

// File is the on-disk configuration: one entry per trigger character.
type File struct {
	Triggers []TriggerSettings `yaml:"triggers" json:"triggers"`

	// Source is the path (or embedded name) the file was read from.
	Source string `yaml:"-" json:"-"`
}

// TriggerSettings configures one trigger and its static candidates.
type TriggerSettings struct {
	Trigger        string           `yaml:"trigger" json:"trigger"`
	Terminators    *string          `yaml:"terminators,omitempty" json:"terminators,omitempty"`
	QueryPattern   string           `yaml:"query_pattern,omitempty" json:"query_pattern,omitempty"`
	Boundary       string           `yaml:"boundary,omitempty" json:"boundary,omitempty"`
	MaxOptions     *int             `yaml:"max_options,omitempty" json:"max_options,omitempty"`
	CaseSensitive  bool             `yaml:"case_sensitive,omitempty" json:"case_sensitive,omitempty"`
	Match          string           `yaml:"match,omitempty" json:"match,omitempty"`
	HighlightFirst *bool            `yaml:"highlight_first,omitempty" json:"highlight_first,omitempty"`
	Options        []OptionSettings `yaml:"options,omitempty" json:"options,omitempty"`
}

// OptionSettings is a static candidate. ID and InsertText default to Label.
type OptionSettings struct {
	ID         string `yaml:"id,omitempty" json:"id,omitempty"`
	Label      string `yaml:"label" json:"label"`
	InsertText string `yaml:"insert_text,omitempty" json:"insert_text,omitempty"`
	Detail     string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// homeDir returns the user's home directory, using os.UserHomeDir() for portability
// across different platforms (including Windows where HOME is not typically set).
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to HOME env var if os.UserHomeDir() fails
		return os.Getenv("HOME")
	}
	return home
}

// SearchPaths returns the locations checked for a user configuration file,
// in priority order.
func SearchPaths() []string {
	var paths []string

	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		paths = append(paths, filepath.Join(xdgConfig, "trigline", "config.yaml"))
		paths = append(paths, filepath.Join(xdgConfig, "trigline", "config.json"))
	}

	// Then check home directory
	if home := homeDir(); home != "" {
		paths = append(paths, filepath.Join(home, ".config", "trigline", "config.yaml"))
		paths = append(paths, filepath.Join(home, ".config", "trigline", "config.json"))
		paths = append(paths, filepath.Join(home, ".trigline.yaml"))
		paths = append(paths, filepath.Join(home, ".trigline.json"))
	}

	return paths
}

// Load reads the configuration. An explicit path must exist; with an empty
// path the search locations are tried in order and the embedded default is
// used when none exists.
func Load(path string) (*File, error) {
	if path != "" {
		return loadFile(path)
	}

	for _, candidate := range SearchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		}
	}

	return Default()
}

// Default returns the embedded configuration.
func Default() (*File, error) {
	data, err := defaultData.ReadFile(defaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", defaultPath, err)
	}
	return Parse(data, defaultPath)
}

func loadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse decodes a YAML or JSON document and validates every trigger in it.
// The name selects the decoder by extension; unknown extensions try YAML,
// then JSON.
func Parse(data []byte, name string) (*File, error) {
	var f File

	switch {
	case strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml"):
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case strings.HasSuffix(name, ".json"):
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", name, err)
			}
		}
	}
	f.Source = name

	seen := make(map[rune]bool, len(f.Triggers))
	for i, ts := range f.Triggers {
		if _, _, err := ts.Build(); err != nil {
			return nil, fmt.Errorf("%s: triggers[%d]: %w", name, i, err)
		}
		r, _ := trigger.ParseTrigger(ts.Trigger)
		if seen[r] {
			return nil, fmt.Errorf("%s: triggers[%d]: duplicate trigger %q", name, i, ts.Trigger)
		}
		seen[r] = true
	}

	return &f, nil
}

// Find returns the settings for the given trigger character.
func (f *File) Find(char string) (TriggerSettings, error) {
	for _, ts := range f.Triggers {
		if ts.Trigger == char {
			return ts, nil
		}
	}
	return TriggerSettings{}, fmt.Errorf("%q: %w", char, ErrUnknownTrigger)
}

// Build converts the settings into an engine configuration and its static
// candidate list.
func (ts TriggerSettings) Build() (trigger.Config, []trigger.Option, error) {
	r, err := trigger.ParseTrigger(ts.Trigger)
	if err != nil {
		return trigger.Config{}, nil, err
	}

	var opts []trigger.ConfigOption

	if ts.Terminators != nil {
		opts = append(opts, trigger.WithTerminators(*ts.Terminators))
	}

	switch ts.QueryPattern {
	case "", "word":
	case "nonspace":
		opts = append(opts, trigger.WithQueryPattern(trigger.Except(trigger.NonSpaceQuery, r)))
	case "any":
		// Terminators still end the query.
		opts = append(opts, trigger.WithQueryPattern(trigger.Except(func(rune) bool { return true }, r)))
	default:
		return trigger.Config{}, nil, fmt.Errorf("unknown query_pattern %q", ts.QueryPattern)
	}

	switch ts.Boundary {
	case "", "alnum":
	case "space":
		opts = append(opts, trigger.WithBoundary(trigger.SpaceBoundary))
	case "none":
		opts = append(opts, trigger.WithBoundary(trigger.AnyBoundary))
	default:
		return trigger.Config{}, nil, fmt.Errorf("unknown boundary %q", ts.Boundary)
	}

	switch ts.Match {
	case "", "substring":
	case "fuzzy":
		opts = append(opts, trigger.WithMatchMode(trigger.MatchFuzzy))
	default:
		return trigger.Config{}, nil, fmt.Errorf("unknown match %q", ts.Match)
	}

	if ts.MaxOptions != nil {
		opts = append(opts, trigger.WithMaxOptions(*ts.MaxOptions))
	}
	if ts.CaseSensitive {
		opts = append(opts, trigger.WithCaseSensitive(true))
	}
	if ts.HighlightFirst != nil {
		opts = append(opts, trigger.WithHighlightFirst(*ts.HighlightFirst))
	}

	cfg, err := trigger.NewConfig(r, opts...)
	if err != nil {
		return trigger.Config{}, nil, err
	}

	for i, o := range ts.Options {
		if o.Label == "" {
			return trigger.Config{}, nil, fmt.Errorf("options[%d]: label is required", i)
		}
	}

	return cfg, lo.Map(ts.Options, func(o OptionSettings, _ int) trigger.Option {
		return o.Option()
	}), nil
}

// Option converts the settings into a candidate, filling defaults.
func (o OptionSettings) Option() trigger.Option {
	opt := trigger.Option{
		ID:         o.ID,
		Label:      o.Label,
		InsertText: o.InsertText,
		Detail:     o.Detail,
	}
	if opt.ID == "" {
		opt.ID = o.Label
	}
	if opt.InsertText == "" {
		opt.InsertText = o.Label
	}
	return opt
}
