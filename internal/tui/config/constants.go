package config

// Layout constants
const (
	// Panel layout
	DefaultPanelWidth = 72
	MinPanelWidth     = 30

	// Lines used by header, path, footer and borders around the menu
	ChromeHeight = 8

	// Menu rows shown per page when the window size is unknown
	DefaultPageSize = 15

	// Entry display
	EntryNameTruncateLength = 60
)
