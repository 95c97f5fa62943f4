package client

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

const (
	configfile = ".daybook"
	draftsfile = ".daybook-drafts"
)

// A Config holds client's configuration.
type Config struct {
	Endpoint    string `json:"endpoint"`
	BearerToken string `json:"bearer_token"`
}

// Remove removes the config file from the current directory.
func Remove() error {
	return os.Remove(configfile)
}

// Load gets the configuration from the current folder according to `configfile` const.
func Load() (Config, error) {
	var cfg Config

	payload, err := os.ReadFile(configfile)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read config file")
	}

	err = json.Unmarshal(payload, &cfg)
	return cfg, errors.Wrap(err, "could not parse config")
}

// Save stores the configuration in the current folder according to `configfile` const.
func Save(cfg Config) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "could not serialize config")
	}

	err = os.WriteFile(configfile, payload, 0600)
	return errors.Wrap(err, "could not store config")
}

// Drafts returns the default draft store of the current folder.
func Drafts() *FileStore {
	return NewFileStore(draftsfile)
}
