package theme

// Terminal-compatible color constants using ANSI standard colors
const (
	ColorWhite        = "#FFFFFF" // ANSI 15 - primary text
	ColorBrightBlack  = "#808080" // ANSI 8 - secondary text
	ColorBrightBlue   = "#5C7CFA" // ANSI 12 - primary accent
	ColorBrightCyan   = "#66D9E8" // ANSI 14 - secondary accent
	ColorBrightGreen  = "#51CF66" // ANSI 10 - success
	ColorBrightYellow = "#FFD43B" // ANSI 11 - warning
	ColorBrightRed    = "#FF6B6B" // ANSI 9 - error

	// Entry kind colors
	ColorBucket = "#FFD43B"
	ColorFolder = "#5C7CFA"
	ColorMarker = "#66D9E8"

	// File type colors
	ColorFileImage    = "#74C0FC"
	ColorFileDocument = "#51CF66"
	ColorFileArchive  = "#FCC419"
	ColorFileVideo    = "#FF8787"
	ColorFileAudio    = "#DA77F2"
	ColorFileText     = "#E9ECEF"
	ColorFileCode     = "#B197FC"
	ColorFileData     = "#69DB7C"
)

// GetFileColor returns the color for a given file category
func GetFileColor(category string) string {
	switch category {
	case "image":
		return ColorFileImage
	case "document":
		return ColorFileDocument
	case "archive":
		return ColorFileArchive
	case "video":
		return ColorFileVideo
	case "audio":
		return ColorFileAudio
	case "text":
		return ColorFileText
	case "code":
		return ColorFileCode
	case "data":
		return ColorFileData
	default:
		return ColorWhite
	}
}

// Message levels understood by GetMessageColor and GetMessageIcon
const (
	MessageInfo = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// GetMessageColor returns the color for a given message level
func GetMessageColor(level int) string {
	switch level {
	case MessageError:
		return ColorBrightRed
	case MessageSuccess:
		return ColorBrightGreen
	case MessageWarning:
		return ColorBrightYellow
	default:
		return ColorBrightCyan
	}
}

// GetMessageIcon returns the icon for a given message level
func GetMessageIcon(level int) string {
	switch level {
	case MessageError:
		return "✗"
	case MessageSuccess:
		return "✓"
	case MessageWarning:
		return "!"
	default:
		return "i"
	}
}
