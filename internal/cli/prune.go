package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kevin-luna/cursito-api/pkg/config"
	"github.com/kevin-luna/cursito-api/pkg/storage"
)

func newPruneCommand() *cobra.Command {
	var (
		dir       string
		olderThan time.Duration
	)
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete exported reports older than a given age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}
			if dir == "" {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				dir = cfg.Reports.ExportDir
			}
			store, err := storage.NewLocalStorage(dir)
			if err != nil {
				return err
			}
			deleted, err := store.PruneOlderThan(time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			for _, name := range deleted {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "removed %d files from %s\n", len(deleted), store.Dir())
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "export directory (default REPORT_EXPORT_DIR)")
	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "minimum file age")
	return cmd
}
