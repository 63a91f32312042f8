package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/helmcode/flowchart-explainer/pkg/llm"
)

// Config holds the gateway and client settings. The provider API key is deliberately
// absent: it is read from the environment on every analysis.
type Config struct {
	Port string

	Provider    llm.Provider
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, seeding it from a .env file when
// one is present in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	temp, err := getFloatEnv("AI_GATEWAY_TEMPERATURE", 0.7)
	if err != nil {
		return nil, err
	}
	timeout, err := getDurationEnv("AI_GATEWAY_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		Provider:    llm.Provider(strings.ToLower(getEnv("AI_PROVIDER", string(llm.ProviderLovable)))),
		BaseURL:     getEnv("AI_GATEWAY_URL", ""),
		Model:       getEnv("AI_GATEWAY_MODEL", ""),
		Temperature: float32(temp),
		Timeout:     timeout,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
	}, nil
}

// LLMSettings returns the overrides passed to llm.NewFactory.
func (c *Config) LLMSettings() llm.Settings {
	temperature := c.Temperature
	return llm.Settings{
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		Temperature: &temperature,
		Timeout:     c.Timeout,
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) (float64, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}
