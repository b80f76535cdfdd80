package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from an
// optional YAML file, overridden by environment variables.
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"serverAddress"`
	Environment   string `yaml:"environment"`

	// Persistence
	DataDir string `yaml:"dataDir"`

	// Advisory source (assistant)
	AssistantEndpoint string `yaml:"assistantEndpoint"`
	AssistantTimeout  int    `yaml:"assistantTimeoutMS"` // milliseconds

	// Autosave
	AutosaveDelayMS int `yaml:"autosaveDelayMS"`

	// Runtime-tunable overrides, watched for changes when set
	DynamicConfigPath string `yaml:"dynamicConfigPath"`

	// Logging and features
	LogLevel      string `yaml:"logLevel"`
	EnableMetrics bool   `yaml:"enableMetrics"`
	EnableCORS    bool   `yaml:"enableCORS"`
}

// LoadConfig loads configuration from the optional file named by
// CONFIG_FILE, then applies environment variable overrides.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:    ":8080",
		Environment:      "development",
		DataDir:          ".railcanvas",
		AssistantTimeout: 10000,
		AutosaveDelayMS:  2000,
		LogLevel:         "info",
		EnableMetrics:    true,
		EnableCORS:       true,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.AssistantEndpoint = getEnv("ASSISTANT_ENDPOINT", cfg.AssistantEndpoint)
	cfg.AssistantTimeout = getEnvInt("ASSISTANT_TIMEOUT_MS", cfg.AssistantTimeout)
	cfg.AutosaveDelayMS = getEnvInt("AUTOSAVE_DELAY_MS", cfg.AutosaveDelayMS)
	cfg.DynamicConfigPath = getEnv("DYNAMIC_CONFIG_PATH", cfg.DynamicConfigPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if c.AutosaveDelayMS <= 0 {
		return fmt.Errorf("autosave delay must be positive, got %d", c.AutosaveDelayMS)
	}
	if c.AssistantTimeout <= 0 {
		return fmt.Errorf("assistant timeout must be positive, got %d", c.AssistantTimeout)
	}
	return nil
}

// AutosaveDelay returns the debounce window as a duration
func (c *Config) AutosaveDelay() time.Duration {
	return time.Duration(c.AutosaveDelayMS) * time.Millisecond
}

// AssistantSendTimeout returns the advisory request timeout
func (c *Config) AssistantSendTimeout() time.Duration {
	return time.Duration(c.AssistantTimeout) * time.Millisecond
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
