package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhii242004/applymail/internal/review"
	"github.com/abhii242004/applymail/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse saved drafts interactively (TUI)",
	Long:  "Shows the saved-drafts picker, then opens the chosen draft in a scrollable view.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	drafts, err := sqlStore.List(0)
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		fmt.Println("No saved drafts. Run `applymail draft` first.")
		return nil
	}

	for {
		choice, err := review.RunDraftPicker(drafts)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return nil
		}
		if choice < 0 {
			return nil
		}

		wantQuit, err := review.RunViewer(drafts[choice])
		if err != nil {
			fmt.Printf("Viewer error: %v\n", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}
