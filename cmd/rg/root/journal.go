package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ruleguard/internal/ui"
)

func newJournalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "journal <text>",
		Short: "Add a journal entry to the activity log",
		Args: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("journal text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, _, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			text := strings.TrimSpace(strings.Join(args, " "))
			if err := eng.AddJournalEntry(ctx, text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconJournal, "Noted"))
			return nil
		},
	}
}
