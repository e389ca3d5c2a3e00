package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// CreatePanelStyle creates the bordered panel holding the menu
func CreatePanelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Border(BorderStyleUnified).
		BorderForeground(lipgloss.Color(ColorBrightBlue)).
		Padding(0, 1).
		Foreground(lipgloss.Color(ColorWhite))
}

// CreateHeaderStyle creates a consistent header style
func CreateHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorBrightCyan))
}

// CreatePathStyle creates the style of the current location line
func CreatePathStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightBlack)).
		MarginBottom(1)
}

// CreateSelectedRowStyle creates the style of the row under the cursor
func CreateSelectedRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(ColorBrightBlue)).
		Foreground(lipgloss.Color(ColorWhite)).
		Bold(true)
}

// CreateEntryStyle creates the style of an unselected row in color
func CreateEntryStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// CreateSeparatorStyle creates the style of menu separators
func CreateSeparatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightBlack))
}

// CreateSecondaryTextStyle creates a consistent secondary text style
func CreateSecondaryTextStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightBlack)).
		Italic(true)
}

// CreateFooterStyle creates a consistent footer style
func CreateFooterStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightBlack)).
		MarginTop(1)
}

// CreateLoadingStyle creates a consistent loading state style
func CreateLoadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightYellow))
}
