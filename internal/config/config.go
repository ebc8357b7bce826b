package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvAPIKey holds the pepy.tech API key
	EnvAPIKey = "PEPY_API_KEY"
	// EnvConfigPath overrides the default config file location
	EnvConfigPath = "PEPYCHART_CONFIG_PATH"
)

var (
	// ErrMissingOutputPath is returned when an image is requested without a destination
	ErrMissingOutputPath = errors.New("output path must be provided when creating an image")
	// ErrMissingAPIKey is returned when no API key is found in flags, environment or config
	ErrMissingAPIKey = errors.New("API key is required (use --api-key, $" + EnvAPIKey + " or the config file)")
)

// Config represents the application configuration
type Config struct {
	APIKey   string        `yaml:"api_key,omitempty"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`
	Chart    ChartConfig   `yaml:"chart"`
	Server   ServerConfig  `yaml:"server"`
	Watch    WatchConfig   `yaml:"watch,omitempty"`
}

// ChartConfig holds chart rendering defaults
type ChartConfig struct {
	Color           string `yaml:"color"`
	TitleFontSize   int    `yaml:"title_font_size"`
	AxisFontSizeAdj int    `yaml:"axis_font_size_adj"`
	RollingWindow   int    `yaml:"rolling_window"`
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	DPI             int    `yaml:"dpi"`
}

// ServerConfig holds the REST API settings
type ServerConfig struct {
	Host              string `yaml:"host"`
	Port              string `yaml:"port"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// WatchConfig describes a chart regenerated on a cron schedule
type WatchConfig struct {
	Cron          string `yaml:"cron,omitempty"`
	Package       string `yaml:"package,omitempty"`
	OutputPath    string `yaml:"output_path,omitempty"`
	RollingWindow int    `yaml:"rolling_window,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  "https://pepy.tech",
		Timeout:  10 * time.Second,
		LogLevel: "info",
		Chart: ChartConfig{
			Color:           "#FF0000FF",
			TitleFontSize:   14,
			AxisFontSizeAdj: 4,
			RollingWindow:   7,
			Width:           720,
			Height:          405,
			DPI:             100,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              "8989",
			RequestsPerMinute: 30,
		},
		Watch: WatchConfig{
			Cron: "@daily",
		},
	}
}

// Load loads configuration from file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadOptional loads the config file when it exists and the defaults otherwise
func LoadOptional(path string) (*Config, error) {
	if !Exists(path) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// the file may hold an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveAPIKey returns the first non-empty key among flag, environment and config
func (c *Config) ResolveAPIKey(flagValue string) (string, error) {
	for _, key := range []string{flagValue, os.Getenv(EnvAPIKey), c.APIKey} {
		if key != "" {
			return key, nil
		}
	}
	return "", ErrMissingAPIKey
}

// LoadEnv loads a .env file from dir when present
func LoadEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// GetConfigPath returns the config file path, honouring $PEPYCHART_CONFIG_PATH
func GetConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pepychart/config.yaml"
	}
	return filepath.Join(home, ".pepychart", "config.yaml")
}

// Exists checks if config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
