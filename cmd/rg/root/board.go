package root

import (
	"context"

	"github.com/spf13/cobra"

	"ruleguard/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Live dashboard (refreshes on store changes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, st, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.RunBoard(ctx, eng, st, cmd.OutOrStdout())
		},
	}
}
