package theme

import "github.com/charmbracelet/lipgloss"

// BorderStyleUnified is the box drawing border shared by all panels
var BorderStyleUnified = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// SeparatorRune draws menu separator rows
const SeparatorRune = "─"
