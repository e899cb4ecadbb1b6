package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhii242004/applymail/internal/store"
)

var (
	historyLimit int
	historyPrune string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved drafts",
	Long:  "Reads the draft history and prints a table of saved drafts, newest first.",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of drafts to list (0 = all)")
	historyCmd.Flags().StringVar(&historyPrune, "prune", "", "delete drafts older than this duration (e.g. 720h) before listing")
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	if historyPrune != "" {
		olderThan, err := time.ParseDuration(historyPrune)
		if err != nil {
			return fmt.Errorf("parse --prune %q: %w", historyPrune, err)
		}
		if err := sqlStore.Cleanup(olderThan); err != nil {
			return err
		}
	}

	drafts, err := sqlStore.List(historyLimit)
	if err != nil {
		return err
	}

	if len(drafts) == 0 {
		fmt.Println("No saved drafts.")
		return nil
	}

	fmt.Printf("%-5s %-17s %-26s %s\n", "ID", "Created", "Model", "Job")
	fmt.Println(strings.Repeat("─", 80))
	for _, d := range drafts {
		fmt.Printf("%-5d %-17s %-26s %s\n",
			d.ID,
			d.CreatedAt.Local().Format("2006-01-02 15:04"),
			d.Model,
			d.JobExcerpt,
		)
	}
	fmt.Printf("\nTotal: %d drafts\n", len(drafts))
	return nil
}
