package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config is the optional tio configuration file
// (~/.config/tensorio/config.yaml). Flags given on the command line win.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Standard is the default quantization range for quantize/dequantize.
	Standard string `yaml:"preset"`

	ServerAddress string        `yaml:"server_address"`
	BatchTTL      time.Duration `yaml:"batch_ttl"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tensorio", "config.yaml")
}

// LoadConfig reads path. A missing file yields a zero Config; a malformed
// one is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyLogConfig(cmd *cli.Command, c Config) {
	if c.LogLevel != "" && !cmd.IsSet("log-level") {
		logLevel = c.LogLevel
	}
	if c.LogFormat != "" && !cmd.IsSet("log-format") {
		logFormat = c.LogFormat
	}
}

func applyServeConfig(cmd *cli.Command, c Config, addr *string, ttl *time.Duration) {
	if c.ServerAddress != "" && !cmd.IsSet("addr") {
		*addr = c.ServerAddress
	}
	if c.BatchTTL > 0 && !cmd.IsSet("batch-ttl") {
		*ttl = c.BatchTTL
	}
}
