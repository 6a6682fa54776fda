package config

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

type TLSConfig struct {
	SkipVerify bool   `yaml:"skip-verify"`
	CACertPath string `yaml:"ca-cert-path,omitempty"`
	ClientCert string `yaml:"client-cert,omitempty"`
	ClientKey  string `yaml:"client-key,omitempty"`
}

// RegistryConfig describes how to reach a single registry.
type RegistryConfig struct {
	Name      string    `yaml:"name"`
	Url       string    `yaml:"url"`
	Username  string    `yaml:"username,omitempty"`
	Password  string    `yaml:"password,omitempty"`
	Active    bool      `yaml:"active"`
	TLSConfig TLSConfig `yaml:"tls"`
}

type Config struct {
	Registries []RegistryConfig `yaml:"registries"`
	ConfigIO   IO               `yaml:"-"`
	// ephemeral is set by command line overrides and never written back
	ephemeral *RegistryConfig
}

type LoadedMsg struct {
	Config *Config
}

type LoadingErrMsg struct {
	Err error
}

func (c *Config) HasRegistries() bool {
	return c.ephemeral != nil || len(c.Registries) > 0
}

// ActiveRegistry returns the registry the console talks to,
// a command line override wins over the configured ones.
func (c *Config) ActiveRegistry() *RegistryConfig {
	if c.ephemeral != nil {
		return c.ephemeral
	}
	for i := range c.Registries {
		if c.Registries[i].Active {
			return &c.Registries[i]
		}
	}
	if len(c.Registries) > 0 {
		return &c.Registries[0]
	}
	return nil
}

func (c *Config) FindRegistryByName(name string) *RegistryConfig {
	for i := range c.Registries {
		if c.Registries[i].Name == name {
			return &c.Registries[i]
		}
	}
	return nil
}

// Override points the console at url for this session only.
func (c *Config) Override(url string) {
	c.ephemeral = &RegistryConfig{
		Name:   "command-line",
		Url:    url,
		Active: true,
	}
}

// RegisterRegistry inserts or updates (matched by name) a registry, activates it
// and persists the config.
func (c *Config) RegisterRegistry(registry RegistryConfig) error {
	if registry.Name == "" {
		return errors.New("registry name cannot be empty")
	}
	if registry.Url == "" {
		return fmt.Errorf("registry %s has no url", registry.Name)
	}

	for i := range c.Registries {
		c.Registries[i].Active = false
	}
	registry.Active = true

	if existing := c.FindRegistryByName(registry.Name); existing != nil {
		*existing = registry
	} else {
		c.Registries = append(c.Registries, registry)
	}

	return c.flush()
}

// SwitchRegistry activates the registry with the given name.
func (c *Config) SwitchRegistry(name string) (*RegistryConfig, error) {
	target := c.FindRegistryByName(name)
	if target == nil {
		return nil, fmt.Errorf("no registry named %s", name)
	}
	for i := range c.Registries {
		c.Registries[i].Active = c.Registries[i].Name == name
	}
	return target, c.flush()
}

func (c *Config) flush() error {
	if c.ConfigIO == nil {
		return nil
	}
	if err := c.ConfigIO.write(c); err != nil {
		log.Error("Unable to persist config", "err", err)
		return errors.Wrap(err, "unable to persist config")
	}
	return nil
}

// New reads the config through io, an unreadable config yields an empty one.
func New(io IO) *Config {
	config, err := io.read()
	if err != nil {
		log.Error("Unable to read config", "err", err)
		config = &Config{}
	}
	config.ConfigIO = io
	return config
}

// Load reads the config through io as a tea.Cmd.
func Load(io IO) tea.Cmd {
	return func() tea.Msg {
		config, err := io.read()
		if err != nil {
			return LoadingErrMsg{err}
		}
		config.ConfigIO = io
		return LoadedMsg{config}
	}
}
