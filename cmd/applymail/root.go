package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhii242004/applymail/internal/config"
	"github.com/abhii242004/applymail/internal/draft"
	"github.com/abhii242004/applymail/internal/llm"
	"github.com/abhii242004/applymail/internal/model"
	"github.com/abhii242004/applymail/internal/notifier"
	"github.com/abhii242004/applymail/internal/retry"
	"github.com/abhii242004/applymail/internal/sanitize"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "applymail",
	Short: "Draft personalized job-application emails with an LLM",
	Long:  "applymail sends a job description and your resume to a chat-completion API,\nstrips any model-generated sign-off, and appends your fixed closing block.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: APPLYMAIL_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > APPLYMAIL_CONFIG env var > "./config.yaml".
// When no path was given explicitly and no config file exists, the built-in
// defaults are used so the tool works with just an API key in the environment.
func loadConfig(path string) (*config.Config, error) {
	// A .env next to the binary is the easiest place for the API key.
	_ = godotenv.Load()

	explicit := path != ""
	if path == "" {
		if env := os.Getenv("APPLYMAIL_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}

	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notify.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notify.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func signatureFromConfig(sc config.SignatureConfig) sanitize.Signature {
	return sanitize.Signature{
		Availability: sc.Availability,
		Name:         sc.Name,
		Email:        sc.Email,
		Phone:        sc.Phone,
		LinkedIn:     sc.LinkedIn,
		GitHub:       sc.GitHub,
	}
}

// buildDrafter wires the completion stack: HTTP provider → rate-limit retry
// decorator → drafting pipeline.
func buildDrafter(cfg *config.Config, store model.DraftStore, n model.Notifier, logger *slog.Logger) *draft.Drafter {
	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	provider := llm.NewOpenAIProvider(cfg.API.BaseURL, cfg.API.APIKey, cfg.API.Model, cfg.API.Temperature, httpClient)
	completer := retry.NewRetryCompleter(provider, cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay, logger)
	return draft.NewDrafter(completer, store, n, signatureFromConfig(cfg.Signature), cfg.API.Model, logger)
}
