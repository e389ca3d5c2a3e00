package browser

import (
	"errors"
	"fmt"
)

// Sentinel errors ending a prompt session.
var (
	// ErrEmptyCatalog indicates there are no buckets to choose from.
	ErrEmptyCatalog = errors.New("no buckets available")

	// ErrListingFailure indicates a remote listing call failed.
	ErrListingFailure = errors.New("listing failed")

	// ErrConfigInvalid indicates an invalid combination of prompt options.
	ErrConfigInvalid = errors.New("invalid prompt configuration")

	// ErrSelectionInvalid indicates a non-terminal entry reached the resolver.
	ErrSelectionInvalid = errors.New("invalid selection")

	// ErrAborted indicates the user left the prompt without choosing.
	ErrAborted = errors.New("prompt aborted")
)

// Error wraps a session failure with the location it happened at.
type Error struct {
	// Op is the operation that failed (e.g. "FetchListing", "Resolve").
	Op string

	Container string
	Prefix    string

	// Kind is one of the sentinel errors above.
	Kind error

	// Err is the underlying cause, nil when Kind says it all.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	switch {
	case e.Container != "" && e.Prefix != "":
		return fmt.Sprintf("%s %s/%s: %s", e.Op, e.Container, e.Prefix, msg)
	case e.Container != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Container, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
}

// Unwrap exposes both the kind and the cause for errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsEmptyCatalog returns true if the error indicates there were no buckets.
func IsEmptyCatalog(err error) bool {
	return errors.Is(err, ErrEmptyCatalog)
}

// IsListingFailure returns true if the error came from a remote listing call.
func IsListingFailure(err error) bool {
	return errors.Is(err, ErrListingFailure)
}

// IsConfigInvalid returns true if the error indicates bad prompt options.
func IsConfigInvalid(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}

// IsAborted returns true if the user quit the prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
