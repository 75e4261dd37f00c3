// Package config loads the extractor settings from YAML, .env files and the environment
package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const envPrefix = "IOC_"

// Filters select which emails of a mailbox are processed. Empty fields match everything.
type Filters struct {
	Sender     string `yaml:"sender"`
	Subject    string `yaml:"subject"`
	Attachment string `yaml:"attachment"`
}

type Config struct {
	Input          string  `yaml:"input"`
	Output         string  `yaml:"output"`
	Format         string  `yaml:"format"`
	LogLevel       string  `yaml:"log_level"`
	AttachmentsDir string  `yaml:"attachments_dir"`
	Filters        Filters `yaml:"filters"`
}

// Default returns the settings used when nothing else is configured
func Default() *Config {
	return &Config{
		Output:         "-",
		Format:         "csv",
		LogLevel:       "info",
		AttachmentsDir: ".",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// empty), the env file (".env" when empty, ignored if missing) and finally
// IOC_* environment variables.
func Load(path, envFile string) (*Config, error) {
	conf := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "load env file %s", envFile)
		}
	} else {
		_ = godotenv.Load()
	}

	conf.Input = getEnv("INPUT", conf.Input)
	conf.Output = getEnv("OUTPUT", conf.Output)
	conf.Format = getEnv("FORMAT", conf.Format)
	conf.LogLevel = getEnv("LOG_LEVEL", conf.LogLevel)
	conf.AttachmentsDir = getEnv("ATTACHMENTS_DIR", conf.AttachmentsDir)
	conf.Filters.Sender = getEnv("SENDER", conf.Filters.Sender)
	conf.Filters.Subject = getEnv("SUBJECT", conf.Filters.Subject)
	conf.Filters.Attachment = getEnv("ATTACHMENT", conf.Filters.Attachment)

	return conf, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "csv", "json":
	default:
		return errors.Errorf("unsupported output format %q (want csv or json)", c.Format)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
