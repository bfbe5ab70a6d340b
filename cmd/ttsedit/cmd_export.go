package main

import (
	"encoding/json"
	"fmt"

	"github.com/jwulff/ttsedit/internal/dataset"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dataset-dir>",
		Short: "Write metadata.edited.csv without opening the editor",
		Long: `Export the dataset's non-deleted entries as stem||transcript rows
to metadata.edited.csv.

By default the export refuses to run while entries are pending review.

Examples:
  ttsedit export ./my-dataset            # Export from metadata.csv
  ttsedit export ./my-dataset --resume   # Export from saved edits
  ttsedit export ./my-dataset --yes      # Include pending-review entries`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			resume, _ := cmd.Flags().GetBool("resume")
			yes, _ := cmd.Flags().GetBool("yes")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := loadDataset(cfg, args[0], resume)
			if err != nil {
				return err
			}

			res, err := s.ExportCSV(dataset.Answers(map[dataset.Prompt]bool{
				dataset.PromptExportPendingReview: yes,
			}))
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			if res == dataset.ExportDeclined {
				return fmt.Errorf("export cancelled: %d entries are pending review (use --yes to export anyway)", s.Stats().PendingReview)
			}

			exported := 0
			for _, e := range s.Entries() {
				if !e.Deleted() {
					exported++
				}
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"path":     s.ExportPath(),
					"source":   s.Format().String(),
					"exported": exported,
					"skipped":  len(s.Entries()) - exported,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d entries from %s\n", exported, s.Format())
			fmt.Fprintf(cmd.OutOrStdout(), "  Path: %s\n", s.ExportPath())
			return nil
		},
	}

	cmd.Flags().Bool("resume", false, "Load metadata.edited.json when it exists alongside metadata.csv")
	cmd.Flags().BoolP("yes", "y", false, "Export even when entries are pending review")

	return cmd
}
