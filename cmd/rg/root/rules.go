package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ruleguard/internal/engine"
	"ruleguard/internal/storage"
	"ruleguard/internal/ui"
)

// resolveRule accepts a 1-based list position or an id prefix.
func resolveRule(rules []storage.Rule, arg string) (*storage.Rule, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(rules) {
			return nil, fmt.Errorf("rule #%d out of range (have %d)", n, len(rules))
		}
		return &rules[n-1], nil
	}
	var match *storage.Rule
	for i := range rules {
		if strings.HasPrefix(rules[i].ID, arg) {
			if match != nil {
				return nil, fmt.Errorf("rule id prefix %q is ambiguous", arg)
			}
			match = &rules[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no rule matching %q", arg)
	}
	return match, nil
}

func printRules(cmd *cobra.Command, rules []storage.Rule) {
	out := cmd.OutOrStdout()
	if len(rules) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("No rules yet. Add one with: rg rules add \"...\""))
		return
	}
	for i, r := range rules {
		state := ui.Good.Render("●")
		if !r.Active {
			state = ui.Muted.Render("○")
		}
		viol := ""
		if r.Violations > 0 {
			viol = " " + ui.Bad.Render(fmt.Sprintf("(%d violations)", r.Violations))
		}
		tags := ""
		if len(r.Tags) > 0 {
			tags = " " + ui.Muted.Render("#"+strings.Join(r.Tags, " #"))
		}
		fmt.Fprintf(out, "%2d. %s %s %s%s%s\n", i+1, state, r.Text, ui.Muted.Render("["+r.Category+"]"), tags, viol)
	}
}

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage your trading rules",
	}
	cmd.AddCommand(
		newRulesAddCmd(),
		newRulesListCmd(),
		newRulesEditCmd(),
		newRulesToggleCmd(),
		newRulesRmCmd(),
	)
	return cmd
}

func newRulesAddCmd() *cobra.Command {
	var tags []string
	var category string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, _, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			r, err := eng.AddRule(ctx, args[0], tags, engine.ParseCategory(category))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconRule, "Added: "+r.Text))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "category: risk, entry, exit, psychology, process")
	return cmd
}

func newRulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, _, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			printRules(cmd, eng.Rules())
			return nil
		},
	}
}

func newRulesEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <rule> <text>",
		Short: "Rewrite a rule's text",
		Args:  cobra.ExactArgs(2),
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
			return eng.EditRule(ctx, r.ID, args[1])
		},
	}
}

func newRulesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <rule>",
		Short: "Pause or resume a rule",
		Args:  cobra.ExactArgs(1),
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
			active, err := eng.ToggleRule(ctx, r.ID)
			if err != nil {
				return err
			}
			state := "paused"
			if active {
				state = "active"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", r.Text, state)
			return nil
		},
	}
}

func newRulesRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <rule>",
		Short: "Delete a rule",
		Args:  cobra.ExactArgs(1),
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
			if err := eng.DeleteRule(ctx, r.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted:", r.Text)
			return nil
		},
	}
}

var errRuleRequired = errors.New("rule (number or id prefix) is required")
