package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"spesa/internal/cli"
	"spesa/internal/core"
)

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the balance and spending per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLedger(cmd, func(ledger *core.Ledger) error {
				out := cmd.OutOrStdout()
				summary := ledger.Summary()

				fmt.Fprintln(out, cli.FormatBalance(summary.Balance))
				fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d expenses", summary.Count)))
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.FormatTitle("Spending by category"))
				fmt.Fprintln(out, cli.RenderBreakdown(summary.Breakdown))
				return nil
			})
		},
	}
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the available categories",
		Args:  cobra.NoArgs,
		// Categories are built in; no store is needed.
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := core.NewCategoryRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Color"))
			for _, c := range reg.All() {
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
				name := c.Name
				if c.ID == reg.Default().ID {
					name += cli.SubtleStyle.Render(" (default)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s %s\n", c.ID, name, swatch, c.Color)
			}
			return w.Flush()
		},
	}
}
