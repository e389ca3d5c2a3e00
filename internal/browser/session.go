package browser

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Status is the dispatcher state of a session.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusAnswered
	StatusFailed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusAnswered:
		return "answered"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (s Status) Terminal() bool {
	return s == StatusAnswered || s == StatusFailed
}

// transitions lists the statuses reachable from each status.
var transitions = map[Status][]Status{
	StatusLoading:  {StatusReady, StatusFailed},
	StatusReady:    {StatusReady, StatusLoading, StatusAnswered, StatusFailed},
	StatusAnswered: nil,
	StatusFailed:   nil,
}

func canTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Action is a discrete user input.
type Action int

const (
	ActionCursorUp Action = iota
	ActionCursorDown
	ActionSubmit
	ActionOtherKey
	ActionAbort
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionCursorUp:
		return "up"
	case ActionCursorDown:
		return "down"
	case ActionSubmit:
		return "submit"
	case ActionOtherKey:
		return "other"
	case ActionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// EffectKind tells the host what to do after an action.
type EffectKind int

const (
	// EffectNone means the action was ignored.
	EffectNone EffectKind = iota
	// EffectRender means the snapshot changed or should be redrawn.
	EffectRender
	// EffectFetch means Effect.Fetch must be run and passed to Complete.
	EffectFetch
	// EffectDone means the session reached a terminal status.
	EffectDone
)

// Effect is the outcome of Dispatch.
type Effect struct {
	Kind  EffectKind
	Fetch FetchRequest
}

// FetchRequest asks the host to list one level. Generation identifies the
// request so results of superseded requests can be dropped.
type FetchRequest struct {
	Generation uint64
	Container  string
	Prefix     string
}

// FetchResult carries the outcome of a FetchRequest back to the session.
type FetchResult struct {
	Generation uint64
	Listing    *Listing
	Err        error
}

// Snapshot is everything a renderer needs to draw the session.
type Snapshot struct {
	HeaderText      string
	CurrentPathText string
	Menu            []MenuEntry
	SelectedIndex   int
	IsLoading       bool
	Status          Status

	// Prefix is the current folder, used to shorten entry names.
	Prefix string

	// Notice is a transient message about the last action.
	Notice string

	// Detail describes the highlighted file, nil otherwise.
	Detail *EntryDetail

	Result *Selection
	Err    error
}

// Session combines the navigation state machine and the input dispatcher
// of one prompt. It does no I/O: fetches are requested through Effect and
// answered through Complete.
type Session struct {
	id   string
	log  *logrus.Entry
	opts Options
	urls URLConfig

	state      State
	listing    *Listing
	menu       []MenuEntry
	status     Status
	generation uint64
	notice     string

	result *Selection
	err    error
}

// NewSession validates opts and creates a session in the Loading status.
// Call Begin to get the first fetch.
func NewSession(opts Options, urls URLConfig) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	opts.Prefix = normalizePrefix(opts.Prefix)
	id := uuid.NewString()
	s := &Session{
		id:     id,
		log:    logrus.WithField("session", id),
		opts:   opts,
		urls:   urls,
		state:  NewState(opts),
		status: StatusLoading,
	}

	s.log.WithFields(logrus.Fields{
		"bucket":        opts.Container,
		"prefix":        opts.Prefix,
		"bucket_switch": opts.AllowContainerSwitch,
		"folders":       opts.AllowFolderSelection,
		"objects":       opts.AllowObjectSelection,
	}).Info("Prompt session started")

	return s, nil
}

// ID returns the session id used in log lines.
func (s *Session) ID() string {
	return s.id
}

// Status returns the dispatcher status.
func (s *Session) Status() Status {
	return s.status
}

// State returns the navigation state.
func (s *Session) State() State {
	return s.state
}

// Options returns the options the session was created with.
func (s *Session) Options() Options {
	return s.opts
}

// Begin requests the listing for the current state. It supersedes any
// fetch still in flight.
func (s *Session) Begin() FetchRequest {
	if s.status.Terminal() {
		return FetchRequest{Generation: s.generation, Container: s.state.Container, Prefix: s.state.Prefix}
	}
	return s.beginFetch()
}

func (s *Session) beginFetch() FetchRequest {
	if s.status != StatusLoading {
		s.setStatus(StatusLoading)
	}
	s.generation++

	req := FetchRequest{
		Generation: s.generation,
		Container:  s.state.Container,
		Prefix:     s.state.Prefix,
	}
	s.log.WithFields(logrus.Fields{
		"bucket":     req.Container,
		"prefix":     req.Prefix,
		"generation": req.Generation,
	}).Debug("Fetching listing")
	return req
}

// Complete applies a fetch result. It returns false when the result was
// discarded because it is stale or the session already ended.
func (s *Session) Complete(res FetchResult) bool {
	if s.status != StatusLoading || res.Generation != s.generation {
		s.log.WithFields(logrus.Fields{
			"generation": res.Generation,
			"current":    s.generation,
			"status":     s.status,
		}).Debug("Discarding stale listing")
		return false
	}

	if res.Err != nil {
		s.fail(res.Err)
		return true
	}

	s.listing = res.Listing
	s.menu = BuildMenu(res.Listing, s.state, s.opts)
	s.state.SelectedIndex = firstSelectable(s.menu)
	s.setStatus(StatusReady)

	entries := 0
	if res.Listing != nil {
		entries = len(res.Listing.Entries)
	}
	s.log.WithFields(logrus.Fields{
		"bucket":  s.state.Container,
		"prefix":  s.state.Prefix,
		"entries": entries,
	}).Debug("Listing loaded")
	return true
}

// Dispatch applies a user action.
func (s *Session) Dispatch(action Action) Effect {
	if s.status.Terminal() {
		return Effect{Kind: EffectNone}
	}

	if action == ActionAbort {
		s.fail(&Error{Op: "Dispatch", Container: s.state.Container, Prefix: s.state.Prefix, Kind: ErrAborted})
		return Effect{Kind: EffectDone}
	}

	if action == ActionOtherKey {
		return Effect{Kind: EffectRender}
	}

	// Menu and cursor stay frozen until the pending fetch resolves
	if s.status == StatusLoading {
		return Effect{Kind: EffectNone}
	}

	s.notice = ""

	switch action {
	case ActionCursorUp:
		s.state.SelectedIndex = moveCursor(s.menu, s.state.SelectedIndex, -1)
		return Effect{Kind: EffectRender}

	case ActionCursorDown:
		s.state.SelectedIndex = moveCursor(s.menu, s.state.SelectedIndex, 1)
		return Effect{Kind: EffectRender}

	case ActionSubmit:
		return s.submit()
	}

	return Effect{Kind: EffectNone}
}

func (s *Session) submit() Effect {
	choice, ok := s.selected()
	if !ok {
		s.notice = "Nothing to select here"
		return Effect{Kind: EffectRender}
	}

	switch {
	case choice.Navigational():
		prev := s.state
		s.state = Advance(s.state, choice, s.opts)
		s.log.WithFields(logrus.Fields{
			"choice": choice.Kind.String(),
			"value":  choice.Value,
			"from":   prev.Container + "/" + prev.Prefix,
			"to":     s.state.Container + "/" + s.state.Prefix,
			"depth":  s.state.Depth,
		}).Debug("Navigating")
		return Effect{Kind: EffectFetch, Fetch: s.beginFetch()}

	case choice.Terminal(s.opts):
		sel, err := Resolve(s.state, choice, s.opts, s.urls)
		if err != nil {
			s.fail(err)
			return Effect{Kind: EffectDone}
		}
		s.result = sel
		s.setStatus(StatusAnswered)
		s.log.WithFields(logrus.Fields{
			"bucket": sel.Container,
			"path":   sel.RelativePath,
		}).Info("Selection made")
		return Effect{Kind: EffectDone}

	case choice.Kind == KindFile:
		s.notice = "Object selection is disabled, pick a folder"
		return Effect{Kind: EffectRender}
	}

	return Effect{Kind: EffectNone}
}

func (s *Session) selected() (MenuEntry, bool) {
	i := s.state.SelectedIndex
	if i < 0 || i >= len(s.menu) || !s.menu[i].Selectable() {
		return MenuEntry{}, false
	}
	return s.menu[i], true
}

// Abort ends a running session with ErrAborted.
func (s *Session) Abort() {
	s.Dispatch(ActionAbort)
}

func (s *Session) fail(err error) {
	s.err = err
	s.setStatus(StatusFailed)
	if IsAborted(err) {
		s.log.Info("Prompt aborted")
		return
	}
	s.log.WithError(err).Error("Prompt failed")
}

func (s *Session) setStatus(to Status) {
	if !canTransition(s.status, to) {
		s.log.Warnf("Ignoring status change %s -> %s", s.status, to)
		return
	}
	s.status = to
}

// Result returns the selection of an answered session or the error of a
// failed one. Both are nil while the session is running.
func (s *Session) Result() (*Selection, error) {
	return s.result, s.err
}

// Snapshot returns a copy of everything needed to render the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		HeaderText:      s.headerText(),
		CurrentPathText: s.currentPathText(),
		Menu:            append([]MenuEntry(nil), s.menu...),
		SelectedIndex:   s.state.SelectedIndex,
		IsLoading:       s.status == StatusLoading,
		Status:          s.status,
		Prefix:          s.state.Prefix,
		Notice:          s.notice,
		Result:          s.result,
		Err:             s.err,
	}

	if choice, ok := s.selected(); ok && s.status == StatusReady && choice.Kind == KindFile {
		if detail, ok := s.listing.Details[choice.Value]; ok {
			snap.Detail = &detail
		}
	}

	return snap
}

func (s *Session) headerText() string {
	if s.state.AtCatalog() {
		return "Select a bucket"
	}
	switch {
	case s.opts.AllowFolderSelection && s.opts.AllowObjectSelection:
		return "Select an object or folder"
	case s.opts.AllowFolderSelection:
		return "Select a folder"
	default:
		return "Select an object"
	}
}

func (s *Session) currentPathText() string {
	if s.state.AtCatalog() {
		return s.urls.Scheme + "://"
	}
	return s.urls.Scheme + "://" + s.state.Container + "/" + s.state.Prefix
}
