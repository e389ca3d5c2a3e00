package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3-prompt/internal/browser"
	tuiconfig "github.com/HaiFongPan/s3-prompt/internal/tui/config"
	"github.com/HaiFongPan/s3-prompt/internal/tui/messaging"
	"github.com/HaiFongPan/s3-prompt/internal/tui/theme"
	"github.com/HaiFongPan/s3-prompt/internal/utils"
)

// PickerKeyMap defines keybindings for the picker
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultPickerKeyMap returns default keybindings
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open / select"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp returns the short help view
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Help, k.Quit}
}

// FullHelp returns the full help view
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Help, k.Quit},
	}
}

// listingLoadedMsg carries a finished fetch back into the update loop
type listingLoadedMsg browser.FetchResult

// PickerModel hosts a browser.Session in a bubbletea program. All
// navigation decisions are made by the session, the model only maps keys
// to actions, runs fetches and renders snapshots.
type PickerModel struct {
	ctx     context.Context
	session *browser.Session
	lister  browser.Lister

	keyMap    PickerKeyMap
	help      help.Model
	spinner   spinner.Model
	paginator paginator.Model
	status    messaging.StatusManager

	showHelp      bool
	fixedPageSize bool
	windowWidth   int
	windowHeight  int
}

// NewPickerModel creates a picker for session listing through lister. A
// positive pageSize fixes the number of menu rows per page, otherwise it
// follows the window height.
func NewPickerModel(ctx context.Context, session *browser.Session, lister browser.Lister, pageSize int) *PickerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.CreateLoadingStyle()

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = tuiconfig.DefaultPageSize
	if pageSize > 0 {
		p.PerPage = pageSize
	}

	h := help.New()
	h.ShowAll = false

	return &PickerModel{
		ctx:           ctx,
		session:       session,
		lister:        lister,
		keyMap:        DefaultPickerKeyMap(),
		help:          h,
		spinner:       s,
		paginator:     p,
		status:        messaging.NewStatusManager(),
		fixedPageSize: pageSize > 0,
		windowWidth:   80,
		windowHeight:  24,
	}
}

// Init implements the bubbletea.Model interface
func (m *PickerModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.session.Begin()), m.spinner.Tick)
}

// Update implements the bubbletea.Model interface
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.help.Width = msg.Width
		if !m.fixedPageSize {
			m.paginator.PerPage = max(msg.Height-tuiconfig.ChromeHeight, 3)
		}
		m.syncPage()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case listingLoadedMsg:
		if !m.session.Complete(browser.FetchResult(msg)) {
			return m, nil
		}
		m.syncPage()
		if m.session.Status().Terminal() {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.Status() != browser.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// handleKeyPress maps keys to session actions
func (m *PickerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var action browser.Action
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		action = browser.ActionAbort
	case key.Matches(msg, m.keyMap.Up):
		action = browser.ActionCursorUp
	case key.Matches(msg, m.keyMap.Down):
		action = browser.ActionCursorDown
	case key.Matches(msg, m.keyMap.Select):
		action = browser.ActionSubmit
	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		action = browser.ActionOtherKey
	default:
		action = browser.ActionOtherKey
	}

	effect := m.session.Dispatch(action)

	switch effect.Kind {
	case browser.EffectFetch:
		m.status.ClearMessage()
		return m, tea.Batch(m.fetch(effect.Fetch), m.spinner.Tick)

	case browser.EffectDone:
		return m, tea.Quit

	case browser.EffectRender:
		if notice := m.session.Snapshot().Notice; notice != "" {
			m.status.SetMessage(notice, messaging.MessageWarning)
		}
		m.syncPage()
	}

	return m, nil
}

// fetch runs req off the update loop
func (m *PickerModel) fetch(req browser.FetchRequest) tea.Cmd {
	lister := m.lister
	ctx := m.ctx
	return func() tea.Msg {
		logrus.Debugf("Picker: fetching %s/%s (generation %d)", req.Container, req.Prefix, req.Generation)
		return listingLoadedMsg(browser.Fetch(ctx, lister, req))
	}
}

// syncPage keeps the cursor row on the visible page
func (m *PickerModel) syncPage() {
	snap := m.session.Snapshot()
	m.paginator.SetTotalPages(len(snap.Menu))
	if m.paginator.PerPage > 0 {
		m.paginator.Page = snap.SelectedIndex / m.paginator.PerPage
	}
}

// Result returns the selection or the error the session ended with
func (m *PickerModel) Result() (*browser.Selection, error) {
	return m.session.Result()
}

// View implements the bubbletea.Model interface
func (m *PickerModel) View() string {
	snap := m.session.Snapshot()
	if snap.Status.Terminal() {
		return ""
	}

	panelWidth := min(max(m.windowWidth-2, tuiconfig.MinPanelWidth), tuiconfig.DefaultPanelWidth)

	header := theme.CreateHeaderStyle().Render(snap.HeaderText)
	path := theme.CreatePathStyle().Render(snap.CurrentPathText)

	var body string
	if snap.IsLoading {
		body = theme.CreateLoadingStyle().Render(fmt.Sprintf("%s Loading...", m.spinner.View()))
	} else {
		body = m.renderMenu(snap, panelWidth-4)
	}

	sections := []string{header, path, theme.CreatePanelStyle(panelWidth).Render(body)}

	if !snap.IsLoading {
		if detail := renderDetail(snap); detail != "" {
			sections = append(sections, detail)
		}
	}

	if m.status.HasMessage() {
		sections = append(sections, m.status.RenderMessage())
	}

	helpView := m.help.ShortHelpView(m.keyMap.ShortHelp())
	if m.showHelp {
		helpView = m.help.FullHelpView(m.keyMap.FullHelp())
	}
	sections = append(sections, theme.CreateFooterStyle().Render(helpView))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMenu renders the visible page of the menu
func (m *PickerModel) renderMenu(snap browser.Snapshot, width int) string {
	start, end := m.paginator.GetSliceBounds(len(snap.Menu))

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, renderEntry(snap.Menu[i], snap.Prefix, i == snap.SelectedIndex, width))
	}

	if m.paginator.TotalPages > 1 {
		rows = append(rows, theme.CreateSecondaryTextStyle().Render("page "+m.paginator.View()))
	}

	return strings.Join(rows, "\n")
}

// renderEntry renders one menu row
func renderEntry(entry browser.MenuEntry, prefix string, selected bool, width int) string {
	if entry.Kind == browser.KindSeparator {
		return theme.CreateSeparatorStyle().Render(strings.Repeat(theme.SeparatorRune, max(width/2, 1)))
	}

	label, color := entryLabel(entry, prefix)
	label = truncate(label, tuiconfig.EntryNameTruncateLength)

	if selected {
		return theme.CreateSelectedRowStyle().Render("❯ " + label)
	}
	return theme.CreateEntryStyle(color).Render("  " + label)
}

// entryLabel returns the text and color of a menu entry
func entryLabel(entry browser.MenuEntry, prefix string) (string, string) {
	switch entry.Kind {
	case browser.KindContainer:
		return "▣ " + entry.Value, theme.ColorBucket
	case browser.KindFolder:
		return "▸ " + browser.DisplayName(prefix, entry.Value), theme.ColorFolder
	case browser.KindFile:
		name := browser.DisplayName(prefix, entry.Value)
		return "  " + name, theme.GetFileColor(utils.CategoryForKey(entry.Value))
	case browser.KindGoUp:
		return "↩ .. (go up)", theme.ColorMarker
	case browser.KindSelectFolder:
		return "✓ select this folder", theme.ColorMarker
	default:
		return entry.Value, theme.ColorWhite
	}
}

// renderDetail renders the size and age of the highlighted file
func renderDetail(snap browser.Snapshot) string {
	if snap.Detail == nil {
		return ""
	}

	parts := []string{humanize.Bytes(uint64(max(snap.Detail.Size, 0)))}
	if !snap.Detail.LastModified.IsZero() {
		parts = append(parts, "modified "+humanize.Time(snap.Detail.LastModified))
	}
	return theme.CreateSecondaryTextStyle().Render(strings.Join(parts, " · "))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
