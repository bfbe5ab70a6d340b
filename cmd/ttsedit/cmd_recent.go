package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jwulff/ttsedit/internal/db"
	"github.com/spf13/cobra"
)

func newRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened datasets",
		Long: `List the datasets opened most recently, newest first.

Examples:
  ttsedit recent
  ttsedit recent --forget ./old-dataset   # Remove an entry from the list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			forget, _ := cmd.Flags().GetString("forget")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("no database configured (set db_path or TTSEDIT_DB)")
			}

			store, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer store.Close()

			if forget != "" {
				if abs, err := filepath.Abs(forget); err == nil {
					forget = abs
				}
				if err := store.Forget(forget); err != nil {
					return err
				}
			}

			limit := cfg.RecentLimit
			if cmd.Flags().Changed("limit") {
				limit, _ = cmd.Flags().GetInt("limit")
			}
			recent, err := store.Recent(limit)
			if err != nil {
				return fmt.Errorf("failed to list datasets: %w", err)
			}

			if jsonOut {
				type item struct {
					Dir           string     `json:"dir"`
					Format        string     `json:"format"`
					Entries       int        `json:"entries"`
					PendingReview int        `json:"pending_review"`
					Deleted       int        `json:"deleted"`
					OpenedAt      time.Time  `json:"opened_at"`
					SavedAt       *time.Time `json:"saved_at,omitempty"`
				}
				items := make([]item, 0, len(recent))
				for _, d := range recent {
					items = append(items, item(d))
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(items)
			}

			out := cmd.OutOrStdout()
			if len(recent) == 0 {
				fmt.Fprintln(out, "No datasets opened yet.")
				return nil
			}
			for _, d := range recent {
				saved := "never saved"
				if d.SavedAt != nil {
					saved = "saved " + d.SavedAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(out, "%s\n  %s, %d entries, %d review, %d deleted, opened %s, %s\n",
					d.Dir, d.Format, d.Entries, d.PendingReview, d.Deleted,
					d.OpenedAt.Format("2006-01-02 15:04"), saved)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum datasets to list (default from config)")
	cmd.Flags().String("forget", "", "Remove a dataset directory from the list first")

	return cmd
}
