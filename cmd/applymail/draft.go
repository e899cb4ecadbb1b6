package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/abhii242004/applymail/internal/model"
	"github.com/abhii242004/applymail/internal/review"
	"github.com/abhii242004/applymail/internal/store"
)

var (
	noSave     bool
	sendNotify bool
	outputPath string
)

var draftCmd = &cobra.Command{
	Use:   "draft <job-description-file> <resume-file>",
	Short: "Draft an application email for a job",
	Long:  "Reads the job description and resume from the given files, asks the LLM for\na tailored application email, and prints the finalized draft.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the draft in history")
	draftCmd.Flags().BoolVar(&sendNotify, "notify", false, "deliver the finished draft via the configured notifier")
	draftCmd.Flags().StringVarP(&outputPath, "output", "o", "", "also write the draft to this file")
}

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

const bannerWidth = 50

// readInput loads and trims one input file, exiting before any network
// activity when the file is missing or empty.
func readInput(path, kind string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s file not found at %s\n", kind, path)
		os.Exit(1)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		fmt.Fprintf(os.Stderr, "Error: %s file %s is empty\n", kind, path)
		os.Exit(1)
	}
	return content
}

func runDraft(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	req := model.Request{
		JobDescription: readInput(args[0], "job description"),
		Resume:         readInput(args[1], "resume"),
	}

	if cfg.API.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Error: no API key configured (set api.api_key in config.yaml or the GROQ_API_KEY env var)")
		os.Exit(1)
	}

	var draftStore model.DraftStore
	if noSave || !cfg.History.Enabled {
		draftStore = store.NewNopStore()
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			logger.Error("failed to open history store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		draftStore = sqlStore
	}

	var n model.Notifier
	if sendNotify {
		httpClient := &http.Client{Timeout: cfg.API.Timeout}
		n = setupNotifier(cfg, httpClient, logger)
	}

	var email model.Email
	if debug {
		drafter := buildDrafter(cfg, draftStore, n, logger)
		email, err = drafter.Generate(context.Background(), req)
	} else {
		// The spinner owns the terminal while the API call runs; route
		// pipeline logs to io.Discard so they don't corrupt it.
		silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		drafter := buildDrafter(cfg, draftStore, n, silentLogger)
		email, err = review.RunLoader(cfg.API.Model, func(ctx context.Context) (model.Email, error) {
			return drafter.Generate(ctx, req)
		})
	}
	if err != nil {
		logger.Debug("draft generation failed", "error", err)
		fmt.Println("\nCould not generate the email draft.")
		return nil
	}

	printDraft(email.Body)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(email.Body+"\n"), 0644); err != nil {
			return fmt.Errorf("write draft to %s: %w", outputPath, err)
		}
		logger.Info("draft written", "path", outputPath)
	}

	return nil
}

func printDraft(body string) {
	banner := bannerStyle.Render(strings.Repeat("═", bannerWidth))
	fmt.Println()
	fmt.Println(banner)
	fmt.Println(bannerStyle.Render("PERSONALIZED APPLICATION EMAIL DRAFT"))
	fmt.Println(banner)
	fmt.Println(body)
	fmt.Println(banner)
}
