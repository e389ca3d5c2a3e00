package browser

import (
	"strings"
)

// State is where a session currently is in the tree.
type State struct {
	// Container is the chosen bucket, "" while browsing the catalog.
	Container string

	// Prefix is the current folder, "" at the container root.
	Prefix string

	// Depth counts descents from the top of the session: the bucket pick
	// (when switching is allowed) plus one per folder.
	Depth int

	SelectedIndex int
}

// NewState creates the starting state for opts.
func NewState(opts Options) State {
	state := State{
		Container: opts.Container,
		Prefix:    normalizePrefix(opts.Prefix),
	}
	if state.Container != "" && opts.AllowContainerSwitch {
		state.Depth = 1
	}
	state.Depth += segmentCount(state.Prefix)
	return state
}

// AtCatalog reports whether the state is browsing the bucket list.
func (s State) AtCatalog() bool {
	return s.Container == ""
}

// Advance computes the state after submitting choice. Only navigational
// entries change the state, everything else returns it unchanged.
func Advance(state State, choice MenuEntry, opts Options) State {
	next := state
	next.SelectedIndex = 0

	switch choice.Kind {
	case KindGoUp:
		next.Depth = max(state.Depth-1, 0)
		if next.Depth > 0 {
			next.Prefix = parentPrefix(state.Prefix)
		}

	case KindContainer, KindFolder:
		next.Depth = state.Depth + 1
		if state.Container == "" {
			next.Container = choice.Value
		} else {
			next.Prefix = choice.Value
		}

	default:
		return state
	}

	if next.Depth == 0 {
		next.Prefix = ""
		if opts.AllowContainerSwitch {
			next.Container = ""
		}
	}

	return next
}

// parentPrefix returns the folder containing prefix, "" for a top level
// folder. Segments are never interpreted, so "./x/" has the parent "./".
func parentPrefix(prefix string) string {
	trimmed := strings.TrimSuffix(prefix, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return ""
	}
	return trimmed[:i+1]
}

// segmentCount returns the number of go up steps from prefix to the root.
// Empty segments count, since S3 keys may contain "//".
func segmentCount(prefix string) int {
	return strings.Count(prefix, "/")
}

// joinKey appends name to prefix. Listing entries already carry the full
// key and are returned as is.
func joinKey(prefix, name string) string {
	if prefix == "" || strings.HasPrefix(name, prefix) {
		return name
	}
	return strings.TrimSuffix(prefix, "/") + "/" + name
}

// DisplayName returns entry relative to prefix, as shown in a menu.
func DisplayName(prefix, entry string) string {
	if prefix != "" && strings.HasPrefix(entry, prefix) && entry != prefix {
		return strings.TrimPrefix(entry, prefix)
	}
	return entry
}
