package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/robottwo/trigline/pkg/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	assert.Equal(t, defaultPath, f.Source)
	require.Len(t, f.Triggers, 3)

	ts, err := f.Find("#")
	require.NoError(t, err)
	cfg, candidates, err := ts.Build()
	require.NoError(t, err)

	assert.Equal(t, '#', cfg.Trigger())
	assert.Equal(t, 8, cfg.MaxOptions())

	release, ok := findOption(candidates, "release")
	require.True(t, ok, "label doubles as id")
	assert.Equal(t, "release", release.InsertText)

	people, err := f.Find("@")
	require.NoError(t, err)
	cfg, _, err = people.Build()
	require.NoError(t, err)
	assert.Equal(t, trigger.MatchFuzzy, cfg.MatchMode())
}

func TestDefault_EmojiTrigger(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	ts, err := f.Find(":")
	require.NoError(t, err)
	cfg, _, err := ts.Build()
	require.NoError(t, err)

	d := trigger.ScanString("see :+1", 7, cfg)
	assert.True(t, d.Active, "nonspace pattern accepts punctuation")
	assert.Equal(t, "+1", d.Query)

	d = trigger.ScanString("12:30", 5, cfg)
	assert.False(t, d.Active, "space boundary rejects times")
}

func TestParse_Formats(t *testing.T) {
	yamlDoc := []byte(`triggers:
  - trigger: "#"
    options:
      - label: alpha
`)
	jsonDoc := []byte(`{"triggers":[{"trigger":"#","options":[{"label":"alpha","insert_text":"#alpha"}]}]}`)

	tests := []struct {
		name string
		data []byte
		file string
		want string
	}{
		{"yaml by extension", yamlDoc, "c.yaml", "alpha"},
		{"yml by extension", yamlDoc, "c.yml", "alpha"},
		{"json by extension", jsonDoc, "c.json", "#alpha"},
		{"unknown extension as yaml", yamlDoc, "config", "alpha"},
		{"unknown extension as json", jsonDoc, "config", "#alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.data, tt.file)
			require.NoError(t, err)
			ts, err := f.Find("#")
			require.NoError(t, err)
			_, candidates, err := ts.Build()
			require.NoError(t, err)
			require.Len(t, candidates, 1)
			assert.Equal(t, tt.want, candidates[0].InsertText)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains string
		is       error
	}{
		{
			name:     "malformed yaml",
			doc:      "triggers: [",
			contains: "failed to parse",
		},
		{
			name: "empty trigger",
			doc:  "triggers:\n  - trigger: \"\"\n",
			is:   trigger.ErrEmptyTrigger,
		},
		{
			name: "multi character trigger",
			doc:  "triggers:\n  - trigger: \"##\"\n",
			is:   trigger.ErrMultiCharTrigger,
		},
		{
			name: "trigger inside query pattern",
			doc:  "triggers:\n  - trigger: \"a\"\n",
			is:   trigger.ErrTriggerInQuery,
		},
		{
			name: "negative max options",
			doc:  "triggers:\n  - trigger: \"#\"\n    max_options: -2\n",
			is:   trigger.ErrInvalidMaxOptions,
		},
		{
			name:     "unknown boundary",
			doc:      "triggers:\n  - trigger: \"#\"\n    boundary: tabs\n",
			contains: "unknown boundary",
		},
		{
			name:     "unknown match",
			doc:      "triggers:\n  - trigger: \"#\"\n    match: regex\n",
			contains: "unknown match",
		},
		{
			name:     "duplicate trigger",
			doc:      "triggers:\n  - trigger: \"#\"\n  - trigger: \"#\"\n",
			contains: "duplicate trigger",
		},
		{
			name:     "option without label",
			doc:      "triggers:\n  - trigger: \"#\"\n    options:\n      - id: x\n",
			contains: "label is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "bad.yaml")
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestBuild_AppliesSettings(t *testing.T) {
	maxOptions := 0
	highlight := false
	terminators := " ,"
	ts := TriggerSettings{
		Trigger:        "/",
		Terminators:    &terminators,
		QueryPattern:   "any",
		Boundary:       "none",
		MaxOptions:     &maxOptions,
		CaseSensitive:  true,
		HighlightFirst: &highlight,
		Options: []OptionSettings{
			{ID: "cmd-help", Label: "help", InsertText: "/help ", Detail: "show help"},
		},
	}

	cfg, candidates, err := ts.Build()
	require.NoError(t, err)

	assert.Equal(t, '/', cfg.Trigger())
	assert.Equal(t, 0, cfg.MaxOptions())
	assert.True(t, cfg.CaseSensitive())
	assert.False(t, cfg.HighlightFirst())
	assert.True(t, cfg.IsTerminator(','))
	assert.False(t, cfg.IsTerminator('\t'))

	assert.Equal(t, []trigger.Option{
		{ID: "cmd-help", Label: "help", InsertText: "/help ", Detail: "show help"},
	}, candidates)

	d := trigger.ScanString("a/b.c", 5, cfg)
	assert.True(t, d.Active, "no boundary and any pattern")
	assert.Equal(t, "b.c", d.Query)

	d = trigger.ScanString("/x,y", 4, cfg)
	assert.False(t, d.Active, "custom terminator ends the query")
}

func TestFind_Unknown(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	_, err = f.Find("!")
	assert.ErrorIs(t, err, ErrUnknownTrigger)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"triggers":[{"trigger":"$"}]}`), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Source)
	_, err = f.Find("$")
	assert.NoError(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_SearchPaths(t *testing.T) {
	xdg := t.TempDir()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)

	// Nothing on disk: embedded default.
	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultPath, f.Source)

	homeFile := filepath.Join(home, ".trigline.yaml")
	require.NoError(t, os.WriteFile(homeFile, []byte("triggers:\n  - trigger: \"~\"\n"), 0o644))
	f, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, homeFile, f.Source)

	// XDG takes precedence over the home directory.
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "trigline"), 0o755))
	xdgFile := filepath.Join(xdg, "trigline", "config.yaml")
	require.NoError(t, os.WriteFile(xdgFile, []byte("triggers:\n  - trigger: \"^\"\n"), 0o644))
	f, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, xdgFile, f.Source)

	paths := SearchPaths()
	assert.Equal(t, xdgFile, paths[0])
	assert.Contains(t, paths, homeFile)
}

func findOption(options []trigger.Option, id string) (trigger.Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return trigger.Option{}, false
}
