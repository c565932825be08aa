// Package config layers an optional YAML config file underneath
// dispatchd's CLI flags using viper, as gardener/docforge and
// zjrosen/perles both do for their own flag/cobra surfaces.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// File holds the subset of coordinator settings that may be templated in a
// config file. Flags passed on the command line always take precedence
// over values loaded here -- File only supplies defaults for unset flags.
type File struct {
	Prolog string `mapstructure:"prolog"`
	Batch  string `mapstructure:"batch"`
	Epilog string `mapstructure:"epilog"`
	Log    string `mapstructure:"log"`
	Sleep  int    `mapstructure:"sleep"`
}

// Load reads a YAML config file at path. An empty path is not an error; it
// returns a zero File so callers can unconditionally apply it as a
// lowest-priority default layer.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return File{}, fmt.Errorf("read config file; path: %s, error: %w", path, err)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return File{}, fmt.Errorf("decode config file; path: %s, error: %w", path, err)
	}
	return f, nil
}
