package main

import (
	"encoding/json"
	"fmt"

	"github.com/jwulff/ttsedit/internal/compare"
	"github.com/spf13/cobra"
)

func newDupesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dupes <dataset-dir>",
		Short: "List near-duplicate transcripts",
		Long: `Compare every non-deleted transcript against the others and list
those scoring at or above the cutoff (0-100, default from config).

Arabic diacritics, case and punctuation are ignored when comparing.

Examples:
  ttsedit dupes ./my-dataset
  ttsedit dupes ./my-dataset --cutoff 90 --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			resume, _ := cmd.Flags().GetBool("resume")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cutoff") {
				cfg.DuplicateCutoff, _ = cmd.Flags().GetInt("cutoff")
			}
			if cmd.Flags().Changed("limit") {
				cfg.DuplicateLimit, _ = cmd.Flags().GetInt("limit")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			s, err := loadDataset(cfg, args[0], resume)
			if err != nil {
				return err
			}
			groups := compare.Duplicates(compare.FromEntries(s.Entries()), cfg.DuplicateCutoff, cfg.DuplicateLimit)

			if jsonOut {
				if groups == nil {
					groups = []compare.Group{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(groups)
			}

			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintf(out, "No near-duplicate transcripts at cutoff %d.\n", cfg.DuplicateCutoff)
				return nil
			}
			for _, g := range groups {
				fmt.Fprintf(out, "%d. %s\n", g.Index+1, g.Text)
				for _, m := range g.Matches {
					if m.Index == g.Index {
						continue
					}
					fmt.Fprintf(out, "  %3d  %d. %s\n", m.Score, m.Index+1, m.Text)
				}
			}
			fmt.Fprintf(out, "\n%d transcripts have near duplicates.\n", len(groups))
			return nil
		},
	}

	cmd.Flags().Int("cutoff", 0, "Minimum similarity score, 0-100")
	cmd.Flags().Int("limit", 0, "Maximum matches per transcript, including itself")
	cmd.Flags().Bool("resume", false, "Load metadata.edited.json when it exists alongside metadata.csv")

	return cmd
}
