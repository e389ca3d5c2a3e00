package messaging

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3-prompt/internal/tui/theme"
)

// MessageType represents different message types for status display
type MessageType int

// Message type constants, in the order of the theme message levels
const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// DefaultTTL is how long a message stays visible
const DefaultTTL = 3 * time.Second

// StatusManager manages the transient status line of the picker
type StatusManager interface {
	SetMessage(message string, msgType MessageType)
	ClearMessage()
	GetMessage() (string, MessageType, bool)
	RenderMessage() string
	HasMessage() bool
}

// StatusManagerImpl implements the StatusManager interface
type StatusManagerImpl struct {
	statusMessage string
	messageType   MessageType
	messageTimer  time.Time
	ttl           time.Duration
	now           func() time.Time
}

// NewStatusManager creates a new status manager instance
func NewStatusManager() StatusManager {
	return newStatusManager(DefaultTTL, time.Now)
}

func newStatusManager(ttl time.Duration, now func() time.Time) *StatusManagerImpl {
	return &StatusManagerImpl{
		messageType: MessageInfo,
		ttl:         ttl,
		now:         now,
	}
}

// SetMessage sets a status message with type
func (sm *StatusManagerImpl) SetMessage(message string, msgType MessageType) {
	sm.statusMessage = message
	sm.messageType = msgType
	sm.messageTimer = sm.now()

	logrus.Debugf("StatusManager: message=%q type=%d", message, msgType)
}

// ClearMessage clears the status message
func (sm *StatusManagerImpl) ClearMessage() {
	sm.statusMessage = ""
}

// GetMessage returns the current message, type, and whether a message exists
func (sm *StatusManagerImpl) GetMessage() (string, MessageType, bool) {
	return sm.statusMessage, sm.messageType, sm.HasMessage()
}

// HasMessage reports whether a message is set and has not expired
func (sm *StatusManagerImpl) HasMessage() bool {
	if sm.statusMessage == "" {
		return false
	}
	// Errors stay until cleared
	if sm.messageType == MessageError {
		return true
	}
	return sm.now().Sub(sm.messageTimer) < sm.ttl
}

// RenderMessage renders the current status message with appropriate styling
func (sm *StatusManagerImpl) RenderMessage() string {
	if !sm.HasMessage() {
		return ""
	}

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.GetMessageColor(int(sm.messageType)))).
		Bold(true)

	return messageStyle.Render(fmt.Sprintf("%s %s", theme.GetMessageIcon(int(sm.messageType)), sm.statusMessage))
}
