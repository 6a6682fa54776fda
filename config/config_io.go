package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = "skconsole"
	configFile = "config.yaml"
)

type IO interface {
	write(config *Config) error
	read() (*Config, error)
}

type fileIO struct {
	path string
}

func (f *fileIO) write(config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "unable to marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrapf(err, "unable to create config dir for %s", f.path)
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *fileIO) read() (*Config, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("No config file found", "path", f.path)
		return &Config{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", f.path)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", f.path)
	}
	return &config, nil
}

// NewFileIO stores the config at path, or at the default
// location in the user's config dir when path is empty.
func NewFileIO(path string) (IO, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "unable to determine config dir")
		}
		path = filepath.Join(dir, configDir, configFile)
	}
	return &fileIO{path: path}, nil
}

type InMemoryConfigIO struct {
	config *Config
}

func (i *InMemoryConfigIO) write(config *Config) error {
	i.config = config
	return nil
}

func (i *InMemoryConfigIO) read() (*Config, error) {
	if i.config == nil {
		return &Config{}, nil
	}
	return i.config, nil
}

func NewInMemoryConfigIO(config *Config) *InMemoryConfigIO {
	return &InMemoryConfigIO{config}
}
