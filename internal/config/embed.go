package config

import (
	"embed"
)

const defaultPath = "data/default.yaml"

// defaultData holds the configuration used when no user file exists.
//
//go:embed data/default.yaml
var defaultData embed.FS
