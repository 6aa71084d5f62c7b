package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevin-luna/cursito-api/internal/service"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the worker/course snapshot cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Drop every cached worker and course snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			defer sess.close()
			if !sess.cache.Enabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "cache disabled, nothing to flush")
				return nil
			}
			n, err := sess.cache.Invalidate(cmd.Context(), service.SnapshotCachePattern)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "flushed %d keys\n", n)
			return nil
		},
	})
	return cmd
}
