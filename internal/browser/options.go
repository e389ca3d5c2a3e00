package browser

import (
	"errors"
	"strings"
)

// Options configure one prompt session. They are fixed for its lifetime.
type Options struct {
	// Container is the bucket the session starts in, "" for the catalog.
	Container string

	// Prefix is the folder the session starts in. Requires Container.
	Prefix string

	AllowContainerSwitch bool
	AllowFolderSelection bool
	AllowObjectSelection bool
}

// DefaultOptions returns options that start at the bucket catalog and
// allow switching buckets and picking objects.
func DefaultOptions() Options {
	return Options{
		AllowContainerSwitch: true,
		AllowObjectSelection: true,
	}
}

// Validate rejects option combinations a session cannot honor.
func (o Options) Validate() error {
	if o.Container == "" && normalizePrefix(o.Prefix) != "" {
		return &Error{Op: "Validate", Prefix: o.Prefix, Kind: ErrConfigInvalid,
			Err: errors.New("a prefix requires a bucket")}
	}

	if o.Container == "" && !o.AllowContainerSwitch {
		return &Error{Op: "Validate", Kind: ErrConfigInvalid,
			Err: errors.New("bucket switching can only be disabled when a bucket is given")}
	}

	if !o.AllowFolderSelection && !o.AllowObjectSelection {
		return &Error{Op: "Validate", Container: o.Container, Kind: ErrConfigInvalid,
			Err: errors.New("folder and object selection are both disabled")}
	}

	return nil
}

// normalizePrefix turns a user supplied prefix into listing form: one
// trailing slash, and "" for the container root. Leading slashes are part
// of the key and are kept.
func normalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
