package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// APIPort is forced onto every configured orka URL
	APIPort = 3000

	// DefaultOrkaURL is written to a freshly created config file
	DefaultOrkaURL = "http://localhost"

	keyOrkaURL = "orkaUrl"
	envOrkaURL = "ORKA_URL"
)

// Config is the CLI configuration. Values are never mutated after Load;
// WithOrkaURL returns a copy.
type Config struct {
	OrkaURL string `yaml:"orkaUrl"`
}

// DefaultPath returns $HOME/.config/orka/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "orka", "config.yaml"), nil
}

// Load reads the config file at path, creating it with defaults when it
// does not exist. ORKA_URL overrides the file.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := writeDefault(path); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(keyOrkaURL, DefaultOrkaURL)
	if err := v.BindEnv(keyOrkaURL, envOrkaURL); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	orkaURL, err := AddPortToURL(v.GetString(keyOrkaURL), APIPort)
	if err != nil {
		return nil, err
	}

	return &Config{OrkaURL: orkaURL}, nil
}

// WithOrkaURL returns a copy of c pointing at raw, with the API port applied.
func (c *Config) WithOrkaURL(raw string) (*Config, error) {
	orkaURL, err := AddPortToURL(raw, APIPort)
	if err != nil {
		return nil, err
	}
	next := *c
	next.OrkaURL = orkaURL
	return &next, nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// AddPortToURL replaces the port of raw. The result always has a path,
// so endpoints can be appended directly ("http://host:3000/" + "workloads").
func AddPortToURL(raw string, port int) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid orka url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return "", fmt.Errorf("invalid orka url %q: empty host", raw)
	}

	u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port))
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

func writeDefault(path string) error {
	cfg := &Config{OrkaURL: DefaultOrkaURL}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to generate default config: %w", err)
	}
	return nil
}
