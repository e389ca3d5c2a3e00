package browser

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3-prompt/internal/s3"
)

// EntryDetail is the metadata known for a file entry.
type EntryDetail struct {
	Size         int64
	LastModified time.Time
}

// Listing is one level of the tree. Entries hold full keys (or bucket names
// at the catalog) in display order. Below the catalog every entry is in
// exactly one of Files or Folders.
type Listing struct {
	Entries []string
	Files   map[string]struct{}
	Folders map[string]struct{}
	Details map[string]EntryDetail
}

func newListing() *Listing {
	return &Listing{
		Files:   make(map[string]struct{}),
		Folders: make(map[string]struct{}),
		Details: make(map[string]EntryDetail),
	}
}

// IsFile reports whether entry is a terminal object.
func (l *Listing) IsFile(entry string) bool {
	_, ok := l.Files[entry]
	return ok
}

// IsFolder reports whether entry is a traversable prefix.
func (l *Listing) IsFolder(entry string) bool {
	_, ok := l.Folders[entry]
	return ok
}

// Lister fetches one level of the tree. An empty container asks for the
// bucket catalog, an empty prefix for the container root.
type Lister interface {
	FetchListing(ctx context.Context, container, prefix string) (*Listing, error)
}

// Remote is the object storage service a Gateway lists from. ListLevel
// takes the prefix unchanged, "" being the bucket root.
type Remote interface {
	ListBuckets(ctx context.Context) ([]string, error)
	ListLevel(ctx context.Context, bucket, prefix string) (*s3.Level, error)
}

// Gateway implements Lister over a Remote, dropping entries that match
// any of the Exclude glob patterns.
type Gateway struct {
	Remote  Remote
	Exclude []string
}

// NewGateway creates a Gateway over remote.
func NewGateway(remote Remote, exclude []string) *Gateway {
	return &Gateway{Remote: remote, Exclude: exclude}
}

// FetchListing implements Lister.
func (g *Gateway) FetchListing(ctx context.Context, container, prefix string) (*Listing, error) {
	if container == "" {
		return g.fetchCatalog(ctx)
	}
	return g.fetchLevel(ctx, container, prefix)
}

func (g *Gateway) fetchCatalog(ctx context.Context) (*Listing, error) {
	buckets, err := g.Remote.ListBuckets(ctx)
	if err != nil {
		return nil, &Error{Op: "FetchListing", Kind: ErrListingFailure, Err: err}
	}
	if len(buckets) == 0 {
		return nil, &Error{Op: "FetchListing", Kind: ErrEmptyCatalog}
	}

	listing := newListing()
	listing.Entries = append(listing.Entries, buckets...)
	sort.Strings(listing.Entries)

	logrus.Debugf("Gateway: catalog has %d buckets", len(listing.Entries))
	return listing, nil
}

func (g *Gateway) fetchLevel(ctx context.Context, container, prefix string) (*Listing, error) {
	level, err := g.Remote.ListLevel(ctx, container, prefix)
	if err != nil {
		return nil, &Error{Op: "FetchListing", Container: container, Prefix: prefix, Kind: ErrListingFailure, Err: err}
	}

	listing := newListing()
	excluded := 0

	for _, folder := range level.Folders {
		if g.excluded(folder) {
			excluded++
			continue
		}
		if listing.IsFolder(folder) {
			continue
		}
		listing.Folders[folder] = struct{}{}
		listing.Entries = append(listing.Entries, folder)
	}

	for _, obj := range level.Files {
		// Zero-byte folder markers share the key of the listed prefix
		if obj.Key == "" || obj.Key == prefix {
			continue
		}
		if g.excluded(obj.Key) {
			excluded++
			continue
		}
		if listing.IsFolder(obj.Key) || listing.IsFile(obj.Key) {
			continue
		}
		listing.Files[obj.Key] = struct{}{}
		listing.Details[obj.Key] = EntryDetail{Size: obj.Size, LastModified: obj.LastModified}
		listing.Entries = append(listing.Entries, obj.Key)
	}

	logrus.Debugf("Gateway: %s/%s folders=%d files=%d excluded=%d",
		container, prefix, len(listing.Folders), len(listing.Files), excluded)
	return listing, nil
}

// excluded reports whether key matches an exclude pattern. Folder keys are
// also tried without their trailing slash so "tmp/**" hides "tmp/".
func (g *Gateway) excluded(key string) bool {
	trimmed := strings.TrimSuffix(key, "/")
	for _, pattern := range g.Exclude {
		if match(pattern, key) || (trimmed != key && match(pattern, trimmed)) {
			return true
		}
	}
	return false
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
