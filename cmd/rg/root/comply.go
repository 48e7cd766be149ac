package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ruleguard/internal/ui"
)

func newComplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comply <rule>",
		Short: "Mark a rule back in compliance",
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
			res, err := eng.MarkCompliance(ctx, r.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconShield, "Back on track: "+r.Text))
			fmt.Fprintln(out, ui.LabelValue("Violations", res.Violations))
			fmt.Fprintln(out, ui.LabelValue("Discipline", ui.Discipline(res.Discipline)))
			return nil
		},
	}
}
