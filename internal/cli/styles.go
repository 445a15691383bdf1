package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"spesa/internal/core"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#6C5CE7")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#00B894")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FDCB6E")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF7675")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	// BalanceStyle renders the total spent.
	BalanceStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
)

// BarWidth is the width in cells of a 100% breakdown bar.
const BarWidth = 30

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatBalance renders the ledger balance in a box.
func FormatBalance(balance decimal.Decimal) string {
	return BalanceStyle.Render("Total spent  " + core.FormatMoney(balance))
}

// BarCells returns how many of width cells a share of pct percent fills.
// Any positive share gets at least one cell.
func BarCells(pct decimal.Decimal, width int) int {
	if !pct.IsPositive() || width <= 0 {
		return 0
	}
	cells := int(pct.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	return max(1, min(cells, width))
}

// RenderBar draws a horizontal bar in the category color.
func RenderBar(cat core.Category, pct decimal.Decimal, width int) string {
	cells := BarCells(pct, width)
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render(strings.Repeat("█", cells))
	return filled + SubtleStyle.Render(strings.Repeat("░", width-cells))
}

// RenderBreakdown renders one line per category share, largest first.
func RenderBreakdown(shares []core.CategoryShare) string {
	if len(shares) == 0 {
		return SubtleStyle.Render("No expenses yet.")
	}

	nameWidth := 0
	for _, s := range shares {
		nameWidth = max(nameWidth, lipgloss.Width(s.Category.Name))
	}

	var b strings.Builder
	for _, s := range shares {
		fmt.Fprintf(&b, "%-*s %s %6s%% %12s\n",
			nameWidth,
			s.Category.Name,
			RenderBar(s.Category, s.Percentage, BarWidth),
			s.Percentage.StringFixed(1),
			core.FormatMoney(s.Total))
	}
	return strings.TrimRight(b.String(), "\n")
}
