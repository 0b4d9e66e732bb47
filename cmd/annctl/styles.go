package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/annvec/annvec/internal/kernel"
)

var (
	colorPrimary = lipgloss.Color("#40A967")
	colorText    = lipgloss.Color("#F2F3F3")
	colorMuted   = lipgloss.Color("240")
	colorSuccess = lipgloss.Color("#22C55E")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
)

var (
	successStyle     = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle     = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	infoStyle        = lipgloss.NewStyle().Foreground(colorPrimary)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	tableCellStyle   = lipgloss.NewStyle().Foreground(colorText)
	borderStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "⚠"
	iconInfo    = "●"
)

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printStyled(w io.Writer, icon string, style lipgloss.Style, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if tty, ok := w.(*os.File); ok && isTTY(tty) {
		fmt.Fprintf(w, "%s %s\n", style.Render(icon), msg)
		return
	}
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

func printSuccess(w io.Writer, format string, args ...interface{}) {
	printStyled(w, iconSuccess, successStyle, format, args...)
}

func printError(w io.Writer, format string, args ...interface{}) {
	printStyled(w, iconError, errorStyle, format, args...)
}

func printWarning(w io.Writer, format string, args ...interface{}) {
	printStyled(w, iconWarning, warningStyle, format, args...)
}

func printInfo(w io.Writer, format string, args ...interface{}) {
	printStyled(w, iconInfo, infoStyle, format, args...)
}

// renderTable renders a bordered, column-aligned table.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	top, mid, bot := "╭", "├", "╰"
	for i, w := range widths {
		seg := strings.Repeat("─", w+2)
		if i < len(widths)-1 {
			top += seg + "┬"
			mid += seg + "┼"
			bot += seg + "┴"
		} else {
			top += seg + "╮"
			mid += seg + "┤"
			bot += seg + "╯"
		}
	}

	var sb strings.Builder
	sb.WriteString(borderStyle.Render(top) + "\n")
	sb.WriteString(borderStyle.Render("│"))
	for i, h := range headers {
		sb.WriteString(tableHeaderStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
		sb.WriteString(borderStyle.Render("│"))
	}
	sb.WriteString("\n")
	sb.WriteString(borderStyle.Render(mid) + "\n")
	for _, row := range rows {
		sb.WriteString(borderStyle.Render("│"))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(tableCellStyle.Render(fmt.Sprintf(" %-*s ", widths[i], cell)))
			sb.WriteString(borderStyle.Render("│"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(borderStyle.Render(bot) + "\n")
	return sb.String()
}

// printResultTable renders search results as an id/payload table.
func printResultTable(w io.Writer, results []kernel.Result) {
	headers := []string{"id", "payload"}
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{strconv.Itoa(int(r.ID)), r.Payload}
	}
	fmt.Fprint(w, renderTable(headers, rows))
}
