package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Provider represents an OpenAI-compatible endpoint family
type Provider string

const (
	ProviderLovable Provider = "lovable"
	ProviderOpenAI  Provider = "openai"
)

type providerDefaults struct {
	keyEnv  string
	baseURL string
	model   string
}

var defaults = map[Provider]providerDefaults{
	ProviderLovable: {keyEnv: "LOVABLE_API_KEY", baseURL: "https://ai.gateway.lovable.dev/v1", model: "google/gemini-2.5-flash"},
	ProviderOpenAI:  {keyEnv: "OPENAI_API_KEY", baseURL: "https://api.openai.com/v1", model: "gpt-4o"},
}

// Settings overrides the provider defaults. Zero values keep the default; a nil
// Temperature keeps 0.7 while a non-nil one, including 0, is used as is.
type Settings struct {
	BaseURL     string
	Model       string
	Temperature *float32
	Timeout     time.Duration
}

// Factory creates Vision clients. The API key is looked up on every Create call so a
// credential added to the environment after startup is picked up without a restart.
type Factory struct {
	provider Provider
	settings Settings
	getenv   func(string) string
	logger   zerolog.Logger
}

// NewFactory creates a new factory for the given provider
func NewFactory(provider Provider, settings Settings, logger zerolog.Logger) (*Factory, error) {
	provider = Provider(strings.ToLower(string(provider)))
	if provider == "" {
		provider = ProviderLovable
	}
	if _, ok := defaults[provider]; !ok {
		return nil, fmt.Errorf("unsupported AI provider: %s (supported: %s)", provider, strings.Join(providerNames(), ", "))
	}
	return &Factory{
		provider: provider,
		settings: settings,
		getenv:   os.Getenv,
		logger:   logger,
	}, nil
}

// WithEnv replaces the environment lookup, mostly for tests.
func (f *Factory) WithEnv(getenv func(string) string) *Factory {
	f.getenv = getenv
	return f
}

// KeyEnv names the environment variable holding the credential.
func (f *Factory) KeyEnv() string {
	return defaults[f.provider].keyEnv
}

// Create builds a client from the current environment.
func (f *Factory) Create() (Vision, error) {
	d := defaults[f.provider]
	apiKey := strings.TrimSpace(f.getenv(d.keyEnv))
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", d.keyEnv, ErrMissingCredential)
	}

	opts := []Option{
		WithBaseURL(firstNonEmpty(f.settings.BaseURL, d.baseURL)),
		WithModel(firstNonEmpty(f.settings.Model, d.model)),
		WithLogger(f.logger),
	}
	if f.settings.Temperature != nil {
		opts = append(opts, WithTemperature(*f.settings.Temperature))
	}
	if f.settings.Timeout > 0 {
		opts = append(opts, WithTimeout(f.settings.Timeout))
	}
	return NewOpenAI(apiKey, opts...), nil
}

// GetAvailableProviders returns a list of available providers
func GetAvailableProviders() []Provider {
	return []Provider{ProviderLovable, ProviderOpenAI}
}

func providerNames() []string {
	var names []string
	for _, p := range GetAvailableProviders() {
		names = append(names, string(p))
	}
	return names
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
