package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for applymail.
type Config struct {
	API       APIConfig
	Retry     RetryConfig
	Signature SignatureConfig
	History   HistoryConfig
	Notify    NotifyConfig
}

// APIConfig describes the chat-completions endpoint.
type APIConfig struct {
	BaseURL     string        // e.g. https://api.groq.com/openai/v1
	Model       string        // model identifier
	APIKey      string        // expanded from env var by Load
	Temperature float64       // sampling temperature
	Timeout     time.Duration // per-request timeout
}

// RetryConfig controls the rate-limit backoff loop.
type RetryConfig struct {
	MaxAttempts int           // total attempts including the first
	BaseDelay   time.Duration // sleep before the first retry, doubled after each
}

// SignatureConfig holds the mandatory closing block appended to every draft.
type SignatureConfig struct {
	Availability string `yaml:"availability"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	LinkedIn     string `yaml:"linkedin"`
	GitHub       string `yaml:"github"`
}

// HistoryConfig controls the local draft store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// NotifyConfig controls which notifier receives finished drafts.
type NotifyConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "llama-3.3-70b-versatile"
	defaultTimeout     = 60 * time.Second
	defaultMaxAttempts = 4
	defaultBaseDelay   = 1 * time.Second
	defaultHistoryPath = "drafts.db"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	API       rawAPIConfig    `yaml:"api"`
	Retry     rawRetryConfig  `yaml:"retry"`
	Signature SignatureConfig `yaml:"signature"`
	History   rawHistory      `yaml:"history"`
	Notify    NotifyConfig    `yaml:"notify"`
}

type rawAPIConfig struct {
	BaseURL     string   `yaml:"base_url"`
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	Temperature *float64 `yaml:"temperature"`
	Timeout     string   `yaml:"timeout"`
}

type rawRetryConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	BaseDelay   string `yaml:"base_delay"`
}

type rawHistory struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration, used when no config file
// exists. The API key still has to come from the environment.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     defaultBaseURL,
			Model:       defaultModel,
			APIKey:      os.Getenv("GROQ_API_KEY"),
			Temperature: 0,
			Timeout:     defaultTimeout,
		},
		Retry: RetryConfig{
			MaxAttempts: defaultMaxAttempts,
			BaseDelay:   defaultBaseDelay,
		},
		Signature: SignatureConfig{
			Availability: "I am available to join immediately, as I have completed all my academic coursework.",
			Name:         "Abhinav Prasad",
			Email:        "abhinavprasad2004ap@gmail.com",
			Phone:        "8989625663",
			LinkedIn:     "https://www.linkedin.com/in/abhinav-prasad-0a894b251/",
			GitHub:       "https://github.com/Abhii242004",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Notify: NotifyConfig{Type: "log"},
	}
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. Environment variables referenced in the file (e.g.
// api_key: ${GROQ_API_KEY}) are expanded before parsing. Unset fields fall
// back to the same defaults Default returns.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.API.BaseURL != "" {
		cfg.API.BaseURL = raw.API.BaseURL
	}
	if raw.API.Model != "" {
		cfg.API.Model = raw.API.Model
	}
	if raw.API.APIKey != "" {
		cfg.API.APIKey = raw.API.APIKey
	}
	if raw.API.Temperature != nil {
		cfg.API.Temperature = *raw.API.Temperature
	}
	if raw.API.Timeout != "" {
		d, err := time.ParseDuration(raw.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse api.timeout %q: %w", raw.API.Timeout, err)
		}
		cfg.API.Timeout = d
	}

	if raw.Retry.MaxAttempts != 0 {
		cfg.Retry.MaxAttempts = raw.Retry.MaxAttempts
	}
	if raw.Retry.BaseDelay != "" {
		d, err := time.ParseDuration(raw.Retry.BaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse retry.base_delay %q: %w", raw.Retry.BaseDelay, err)
		}
		cfg.Retry.BaseDelay = d
	}

	if raw.Signature.Availability != "" {
		cfg.Signature.Availability = raw.Signature.Availability
	}
	if raw.Signature.Name != "" {
		cfg.Signature.Name = raw.Signature.Name
	}
	if raw.Signature.Email != "" {
		cfg.Signature.Email = raw.Signature.Email
	}
	if raw.Signature.Phone != "" {
		cfg.Signature.Phone = raw.Signature.Phone
	}
	if raw.Signature.LinkedIn != "" {
		cfg.Signature.LinkedIn = raw.Signature.LinkedIn
	}
	if raw.Signature.GitHub != "" {
		cfg.Signature.GitHub = raw.Signature.GitHub
	}

	if raw.History.Enabled != nil {
		cfg.History.Enabled = *raw.History.Enabled
	}
	if raw.History.Path != "" {
		cfg.History.Path = raw.History.Path
	}

	if raw.Notify.Type != "" {
		cfg.Notify = raw.Notify
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if cfg.API.Model == "" {
		return fmt.Errorf("api.model must not be empty")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", cfg.API.Timeout)
	}
	if cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry.base_delay must be positive, got %v", cfg.Retry.BaseDelay)
	}

	switch cfg.Notify.Type {
	case "", "log":
	case "slack":
		if cfg.Notify.WebhookURL == "" {
			return fmt.Errorf("notify.webhook_url is required when type is \"slack\"")
		}
	default:
		return fmt.Errorf("notify.type must be \"log\" or \"slack\", got %q", cfg.Notify.Type)
	}

	return nil
}
