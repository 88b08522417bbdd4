package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/virc-go/virc"
)

// fileConfig is the YAML shape of the vircrepl config file.
type fileConfig struct {
	// Server is the irc:// or ircs:// URL to connect to.
	Server string `yaml:"server"`

	// QuitReason is sent with the QUIT on shutdown.
	QuitReason string `yaml:"quitReason"`

	Client virc.Config `yaml:"client"`
}

func loadConfig(path string) (*fileConfig, error) {
	config := &fileConfig{
		Server:     "irc://localhost:6667",
		QuitReason: "Goodnight.",
	}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
