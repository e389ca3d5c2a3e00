package browser

import (
	"errors"
	"fmt"
	"net/url"
)

// URLConfig controls how selection URLs are rendered.
type URLConfig struct {
	// Host serves objects over HTTPS as https://<Host>/<container>/<key>.
	Host string

	// Scheme prefixes the canonical URI, as in s3://<container>/<key>.
	Scheme string
}

// DefaultURLConfig returns the AWS S3 URL layout.
func DefaultURLConfig() URLConfig {
	return URLConfig{Host: "s3.amazonaws.com", Scheme: "s3"}
}

// Selection is the result of a prompt session.
//
// URI carries the key verbatim, the form the aws CLI and SDKs expect in
// s3:// locations. ObjectURL is an HTTP URL, so the key is percent-escaped
// there: "a b.txt" is "s3://b/a b.txt" and "https://<host>/b/a%20b.txt".
type Selection struct {
	Container    string `json:"container" yaml:"container"`
	RelativePath string `json:"relativePath" yaml:"relativePath"`
	ObjectURL    string `json:"objectUrl" yaml:"objectUrl"`
	URI          string `json:"uri" yaml:"uri"`
	IsFolder     bool   `json:"isFolder" yaml:"isFolder"`

	// PresignedURL is filled in by the caller for object selections.
	PresignedURL string `json:"presignedUrl,omitempty" yaml:"presignedUrl,omitempty"`
}

// Resolve turns a terminal choice into a Selection.
func Resolve(state State, choice MenuEntry, opts Options, urls URLConfig) (*Selection, error) {
	if state.Container == "" {
		return nil, &Error{Op: "Resolve", Kind: ErrSelectionInvalid,
			Err: errors.New("no bucket chosen")}
	}

	if !choice.Terminal(opts) {
		return nil, &Error{Op: "Resolve", Container: state.Container, Prefix: state.Prefix, Kind: ErrSelectionInvalid,
			Err: fmt.Errorf("%s entry %q is not selectable", choice.Kind, choice.Value)}
	}

	sel := &Selection{Container: state.Container}
	if choice.Kind == KindSelectFolder {
		sel.RelativePath = state.Prefix
		sel.IsFolder = true
	} else {
		sel.RelativePath = joinKey(state.Prefix, choice.Value)
	}

	sel.ObjectURL = objectURL(urls.Host, sel.Container, sel.RelativePath)
	sel.URI = fmt.Sprintf("%s://%s/%s", urls.Scheme, sel.Container, sel.RelativePath)
	return sel, nil
}

func objectURL(host, container, relativePath string) string {
	u := url.URL{
		Scheme: "https",
		Host:   host,
		Path:   "/" + container + "/" + relativePath,
	}
	return u.String()
}
