package browser

// EntryKind classifies a menu entry.
type EntryKind int

const (
	KindFolder EntryKind = iota
	KindFile
	KindContainer
	KindSeparator
	KindGoUp
	KindSelectFolder
)

// String returns the string representation of the kind
func (k EntryKind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindFile:
		return "file"
	case KindContainer:
		return "bucket"
	case KindSeparator:
		return "separator"
	case KindGoUp:
		return "go up"
	case KindSelectFolder:
		return "select folder"
	default:
		return "unknown"
	}
}

// MenuEntry is one row of the menu. Value holds the key or bucket name of
// real entries and is empty for structural markers.
type MenuEntry struct {
	Kind  EntryKind
	Value string
}

var (
	separatorEntry    = MenuEntry{Kind: KindSeparator}
	goUpEntry         = MenuEntry{Kind: KindGoUp}
	selectFolderEntry = MenuEntry{Kind: KindSelectFolder}
)

// Selectable reports whether the cursor may rest on the entry.
func (e MenuEntry) Selectable() bool {
	return e.Kind != KindSeparator
}

// Navigational reports whether submitting the entry moves through the tree.
func (e MenuEntry) Navigational() bool {
	switch e.Kind {
	case KindFolder, KindContainer, KindGoUp:
		return true
	default:
		return false
	}
}

// Terminal reports whether submitting the entry ends the session with opts.
func (e MenuEntry) Terminal(opts Options) bool {
	switch e.Kind {
	case KindSelectFolder:
		return opts.AllowFolderSelection
	case KindFile:
		return opts.AllowObjectSelection
	default:
		return false
	}
}

// BuildMenu turns a listing into the menu for state. The layout is
// [entries..., separator, go up?, select folder?, separator].
func BuildMenu(listing *Listing, state State, opts Options) []MenuEntry {
	var count int
	if listing != nil {
		count = len(listing.Entries)
	}

	menu := make([]MenuEntry, 0, count+4)
	if listing != nil {
		for _, entry := range listing.Entries {
			menu = append(menu, MenuEntry{Kind: classify(listing, state, entry), Value: entry})
		}
	}

	menu = append(menu, separatorEntry)
	if state.Depth > 0 {
		menu = append(menu, goUpEntry)
	}
	// At the catalog there is no folder to select
	if opts.AllowFolderSelection && state.Container != "" {
		menu = append(menu, selectFolderEntry)
	}
	menu = append(menu, separatorEntry)

	return menu
}

func classify(listing *Listing, state State, entry string) EntryKind {
	switch {
	case state.Container == "":
		return KindContainer
	case listing.IsFolder(entry):
		return KindFolder
	default:
		return KindFile
	}
}

// firstSelectable returns the index of the first selectable entry, or 0
// when there is none.
func firstSelectable(menu []MenuEntry) int {
	for i, entry := range menu {
		if entry.Selectable() {
			return i
		}
	}
	return 0
}

// selectableCount returns the number of entries the cursor can rest on.
func selectableCount(menu []MenuEntry) int {
	n := 0
	for _, entry := range menu {
		if entry.Selectable() {
			n++
		}
	}
	return n
}

// moveCursor steps from index by delta (+1 or -1) to the next selectable
// entry, wrapping around both ends.
func moveCursor(menu []MenuEntry, index, delta int) int {
	n := len(menu)
	if n == 0 || selectableCount(menu) == 0 {
		return index
	}
	next := index
	for i := 0; i < n; i++ {
		next = ((next+delta)%n + n) % n
		if menu[next].Selectable() {
			return next
		}
	}
	return index
}
