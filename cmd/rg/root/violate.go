package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ruleguard/internal/ui"
)

func newViolateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "violate <rule>",
		Short: "Record breaking a rule",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errRuleRequired
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

			r, err := resolveRule(eng.Rules(), args[0])
			if err != nil {
				return err
			}
			res, err := eng.RecordViolation(ctx, r.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconWarn, "Violation recorded: "+r.Text))
			fmt.Fprintln(out, ui.LabelValue("Violations", res.Violations))
			fmt.Fprintln(out, ui.LabelValue("Discipline", ui.Discipline(res.Discipline)))
			return nil
		},
	}
}
