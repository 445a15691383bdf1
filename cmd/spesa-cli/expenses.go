package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"spesa/internal/cli"
	"spesa/internal/core"
)

func (a *app) addCmd() *cobra.Command {
	var (
		category string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "add NAME AMOUNT",
		Short: "Record a new expense",
		Long: `Record a new expense. The amount accepts a dot or a comma as decimal
separator. The category defaults to the first one; the date defaults to today.`,
		Example: `  spesa-cli add Coffee 4.50 --category food
  spesa-cli add "Train ticket" 12,80 --category transport --date 2024-03-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format(core.DateLayout)
			}
			draft := core.Draft{Name: args[0], Amount: args[1], CategoryID: category, Date: date}

			return a.withLedger(cmd, func(ledger *core.Ledger) error {
				e, err := ledger.Add(cmd.Context(), draft)
				if err != nil {
					var ve *core.ValidationError
					if errors.As(err, &ve) {
						return fmt.Errorf("invalid %s: %w", ve.Field, ve.Err)
					}
					return err
				}

				reg := ledger.Registry()
				if !reg.Has(e.CategoryID) {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf(
						"Unknown category %q, shown as %s", e.CategoryID, reg.Fallback().Name)))
				}
				cat := reg.Lookup(e.CategoryID)
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s (%s) %s on %s",
					e.Name, cat.Name, core.FormatMoney(e.Amount), e.Date)))
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("id "+e.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category id (see 'spesa-cli categories')")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD (default today)")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLedger(cmd, func(ledger *core.Ledger) error {
				out := cmd.OutOrStdout()
				expenses := ledger.List()
				if len(expenses) == 0 {
					fmt.Fprintln(out, cli.SubtleStyle.Render("No expenses yet. Use 'spesa-cli add' to record one."))
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cli.HeaderStyle.Render("Date"),
					cli.HeaderStyle.Render("Name"),
					cli.HeaderStyle.Render("Category"),
					cli.HeaderStyle.Render("Amount"),
					cli.HeaderStyle.Render("ID"))
				reg := ledger.Registry()
				for _, e := range expenses {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						e.Date,
						e.Name,
						reg.Lookup(e.CategoryID).Name,
						core.FormatMoney(e.Amount),
						cli.SubtleStyle.Render(e.ID))
				}
				if err := w.Flush(); err != nil {
					return fmt.Errorf("failed to write table: %w", err)
				}

				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.FormatBalance(ledger.Balance()))
				return nil
			})
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove an expense by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd, func(ledger *core.Ledger) error {
				removed, err := ledger.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No expense with id "+args[0]))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Removed "+args[0]))
				return nil
			})
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLedger(cmd, func(ledger *core.Ledger) error {
				out := cmd.OutOrStdout()
				if !yes {
					fmt.Fprintf(out, "Delete all %d expenses? This cannot be undone. [y/N] ", ledger.Len())
					answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					switch strings.ToLower(strings.TrimSpace(answer)) {
					case "y", "yes":
					default:
						fmt.Fprintln(out, cli.SubtleStyle.Render("Aborted."))
						return nil
					}
				}

				if err := ledger.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, cli.FormatSuccess("All expenses deleted"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
