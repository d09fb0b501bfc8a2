// Package defaults exposes the configurable formatting defaults of the
// storage convention. Values come from built-in defaults, an optional
// datablock.yaml, and DATABLOCK_* environment overrides, in that order of
// increasing precedence for the file and environment.
package defaults

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyRunIndexWidth     = "run.index.width"
	KeySessionIndexWidth = "session.index.width"
)

const (
	configFileName = "datablock"
	configFileType = "yaml"
	envPrefix      = "DATABLOCK"
)

var v = newViper()

func newViper() *viper.Viper {
	vp := viper.New()
	vp.SetDefault(KeyRunIndexWidth, 3)
	vp.SetDefault(KeySessionIndexWidth, 3)
	vp.SetEnvPrefix(envPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()
	return vp
}

// Load reads datablock.yaml from dir, if present. A missing config file is
// not an error; a malformed one is.
func Load(dir string) error {
	vp := newViper()
	vp.SetConfigName(configFileName)
	vp.SetConfigType(configFileType)
	vp.AddConfigPath(dir)
	if err := vp.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			v = vp
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	v = vp
	return nil
}

// RunIndexWidth returns the zero-padding width for trial/run indices in
// file names.
func RunIndexWidth() int {
	return v.GetInt(KeyRunIndexWidth)
}

// SessionIndexWidth returns the zero-padding width for session indices in
// directory names formatted without an explicit width.
func SessionIndexWidth() int {
	return v.GetInt(KeySessionIndexWidth)
}
