package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwulff/ttsedit/internal/app"
	"github.com/jwulff/ttsedit/internal/config"
	"github.com/jwulff/ttsedit/internal/dataset"
	"github.com/jwulff/ttsedit/internal/db"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ttsedit [dataset-dir]",
		Short: "Review and correct text-to-speech training datasets",
		Long: `ttsedit is a terminal reviewer for speech datasets laid out as
metadata.csv plus a wavs/ directory.

Transcripts can be corrected, flagged for review or marked deleted.
Edits are saved to metadata.edited.json and exported to
metadata.edited.csv for training.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newExportCmd(),
		newDupesCmd(),
		newRecentCmd(),
	)
	return rootCmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setupLogging sends the standard logger to the configured file. A TUI owns
// stdout, so without a file log output is discarded.
func setupLogging(cfg config.Config) (io.Closer, error) {
	if cfg.LogFile == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "ttsedit")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logs, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logs.Close()

	var dir string
	if len(args) == 1 {
		dir = args[0]
	}

	p := tea.NewProgram(app.New(cfg, dir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ttsedit: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "ttsedit version %s\n", version)
			}
		},
	}
}

// loadDataset opens dir without a terminal. resume picks the saved edits
// over metadata.csv when both exist.
func loadDataset(cfg config.Config, dir string, resume bool) (*dataset.Session, error) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	s, err := dataset.Load(dataset.OSFS{}, dir, dataset.Answers(map[dataset.Prompt]bool{
		dataset.PromptResumeEdits: resume,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	s.SetRegexTimeout(cfg.RegexTimeout)
	recordOpen(cfg, s)
	return s, nil
}

// recordOpen adds the dataset to the recent list. Failures only reach the
// log.
func recordOpen(cfg config.Config, s *dataset.Session) {
	if cfg.DBPath == "" {
		return
	}
	store, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Printf("open recent-datasets store: %v", err)
		return
	}
	defer store.Close()

	st := s.Stats()
	if err := store.RecordOpen(db.Dataset{
		Dir:           s.Dir(),
		Format:        s.Format().String(),
		Entries:       st.Total,
		PendingReview: st.PendingReview,
		Deleted:       st.Deleted,
		OpenedAt:      time.Now(),
	}); err != nil {
		log.Printf("record open: %v", err)
	}
}
