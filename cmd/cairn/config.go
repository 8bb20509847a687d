// Config loading for the cairn CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/cairn/internal/store"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyEncoding       = "encoding"
	cfgKeyKeepLast       = "retention.keep_last"
	cfgKeyKeepMilestones = "retention.keep_milestones"
	cfgKeyMaxAgeDays     = "retention.max_age_days"
)

// defaultConfigYAML is written to config.yaml by `cairn init`.
const defaultConfigYAML = `# Cairn configuration

# Document encoding: yaml or json. Chosen once; every document in the
# project directory uses it.
encoding: yaml

# Checkpoint retention policy, applied when the manifest is first
# created.
retention:
  keep_last: 10
  keep_milestones: true
  max_age_days: 30
`

// loadConfig reads config.yaml from the project directory using Viper.
// A missing directory or config file is not an error; defaults apply.
func loadConfig(dir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyEncoding, store.EncodingYAML)
	v.SetDefault(cfgKeyKeepLast, 10)
	v.SetDefault(cfgKeyKeepMilestones, true)
	v.SetDefault(cfgKeyMaxAgeDays, 30)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// writeDefaultConfig creates config.yaml in the project directory if
// it does not already exist.
func writeDefaultConfig(dir string) error {
	path := filepath.Join(dir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
