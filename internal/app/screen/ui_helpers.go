package screen

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/theme"
)

// place centers content on the full render surface. Zero sizes (before
// the first WindowSizeMsg, and in tests) return the content unplaced.
func place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func titleStyle(thm *theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(thm.Accent).Bold(true)
}

func subtitleStyle(thm *theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(thm.MutedFg)
}

func footerStyle(thm *theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(thm.MutedFg)
}

func textStyle(thm *theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(thm.TextFg)
}

func errorStyle(thm *theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(thm.ErrorFg)
}

func boxStyle(thm *theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(thm.Border).
		Padding(1, 2)
}

// loadingLine renders a spinner frame next to a message.
func loadingLine(thm *theme.Theme, spinner, message string) string {
	s := lipgloss.NewStyle().Foreground(thm.Accent).Render(spinner)
	return s + " " + lipgloss.NewStyle().Foreground(thm.MutedFg).Render(message)
}

// Status glyphs degrade to ASCII when icons are disabled.

func clonedMark(showIcons bool) string {
	if showIcons {
		return "✓ Cloned"
	}
	return "[x] Cloned"
}

func notClonedMark(showIcons bool) string {
	if showIcons {
		return "✗ Not cloned"
	}
	return "[ ] Not cloned"
}

func committedMark(showIcons bool) string {
	if showIcons {
		return "✅"
	}
	return "Y"
}

func missedMark(showIcons bool) string {
	if showIcons {
		return "❌"
	}
	return "-"
}
