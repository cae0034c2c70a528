package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/cadence/internal/constants"
	"github.com/mrz1836/cadence/internal/errors"
)

// HomeDir returns the cadence home directory: $CADENCE_HOME when set,
// otherwise ~/.cadence.
//
// Returns an error if the home directory cannot be determined.
func HomeDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.CadenceHome), nil
}

// GlobalConfigPath returns the full path to the configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// DataFilePath returns the data file path: Storage.DataFile when set,
// otherwise data.yaml inside the home directory.
func (c *Config) DataFilePath() (string, error) {
	if c.Storage.DataFile != "" {
		return c.Storage.DataFile, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", fmt.Errorf("get data file path: %w", err)
	}
	return filepath.Join(dir, constants.DataFileName), nil
}
