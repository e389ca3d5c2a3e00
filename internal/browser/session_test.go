package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := NewSession(opts, DefaultURLConfig())
	require.NoError(t, err)
	return s
}

// load begins a fetch for the current state and completes it with listing.
func load(t *testing.T, s *Session, listing *Listing) FetchRequest {
	t.Helper()
	req := s.Begin()
	require.True(t, s.Complete(FetchResult{Generation: req.Generation, Listing: listing}))
	return req
}

// cursorTo moves the cursor down until it rests on entry.
func cursorTo(t *testing.T, s *Session, entry MenuEntry) {
	t.Helper()
	for i := 0; i < len(s.Snapshot().Menu); i++ {
		snap := s.Snapshot()
		if snap.Menu[snap.SelectedIndex] == entry {
			return
		}
		s.Dispatch(ActionCursorDown)
	}
	t.Fatalf("entry %+v not reachable", entry)
}

func TestSession_StartsLoading(t *testing.T) {
	s := newTestSession(t, DefaultOptions())

	snap := s.Snapshot()
	assert.True(t, snap.IsLoading)
	assert.Equal(t, StatusLoading, snap.Status)
	assert.Equal(t, "Select a bucket", snap.HeaderText)
	assert.Equal(t, "s3://", snap.CurrentPathText)
	assert.NotEmpty(t, s.ID())

	req := s.Begin()
	assert.Equal(t, FetchRequest{Generation: 1}, req)
}

func TestSession_PickBucket(t *testing.T) {
	s := newTestSession(t, DefaultOptions())
	load(t, s, catalog("bucket1", "bucket2"))

	snap := s.Snapshot()
	assert.Equal(t, StatusReady, snap.Status)
	assert.Equal(t, 0, snap.SelectedIndex)

	effect := s.Dispatch(ActionSubmit)

	require.Equal(t, EffectFetch, effect.Kind)
	assert.Equal(t, "bucket1", effect.Fetch.Container)
	assert.Empty(t, effect.Fetch.Prefix)
	assert.Equal(t, State{Container: "bucket1", Depth: 1}, s.State())
	assert.Equal(t, StatusLoading, s.Status())
}

func TestSession_DescendAndGoUp(t *testing.T) {
	s := newTestSession(t, Options{Container: "b", Prefix: "a/", AllowObjectSelection: true})
	assert.Equal(t, State{Container: "b", Prefix: "a/", Depth: 1}, s.State())
	load(t, s, level([]string{"a/sub/"}, []string{"a/f.txt"}))

	effect := s.Dispatch(ActionSubmit)
	require.Equal(t, EffectFetch, effect.Kind)
	assert.Equal(t, "a/sub/", effect.Fetch.Prefix)
	assert.Equal(t, State{Container: "b", Prefix: "a/sub/", Depth: 2}, s.State())

	require.True(t, s.Complete(FetchResult{Generation: effect.Fetch.Generation, Listing: level(nil, nil)}))
	cursorTo(t, s, goUpEntry)

	effect = s.Dispatch(ActionSubmit)
	require.Equal(t, EffectFetch, effect.Kind)
	assert.Equal(t, State{Container: "b", Prefix: "a/", Depth: 1}, s.State())
	assert.Equal(t, "a/", effect.Fetch.Prefix)
}

func TestSession_SelectObject(t *testing.T) {
	s := newTestSession(t, Options{Container: "b", Prefix: "a/", AllowObjectSelection: true})
	load(t, s, level([]string{"a/sub/"}, []string{"a/f.txt"}))

	cursorTo(t, s, MenuEntry{Kind: KindFile, Value: "a/f.txt"})
	effect := s.Dispatch(ActionSubmit)

	assert.Equal(t, EffectDone, effect.Kind)
	assert.Equal(t, StatusAnswered, s.Status())

	sel, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, &Selection{
		Container:    "b",
		RelativePath: "a/f.txt",
		ObjectURL:    "https://s3.amazonaws.com/b/a/f.txt",
		URI:          "s3://b/a/f.txt",
	}, sel)
}

func TestSession_SelectFolder(t *testing.T) {
	s := newTestSession(t, Options{Container: "b", Prefix: "a/", AllowFolderSelection: true})
	load(t, s, level(nil, []string{"a/f.txt"}))

	assert.Equal(t, "Select a folder", s.Snapshot().HeaderText)
	assert.Equal(t, "s3://b/a/", s.Snapshot().CurrentPathText)

	cursorTo(t, s, selectFolderEntry)
	assert.Equal(t, EffectDone, s.Dispatch(ActionSubmit).Kind)

	sel, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, "a/", sel.RelativePath)
	assert.True(t, sel.IsFolder)
}

func TestSession_FileWithObjectSelectionDisabled(t *testing.T) {
	s := newTestSession(t, Options{Container: "b", AllowFolderSelection: true})
	load(t, s, level(nil, []string{"f.txt"}))

	effect := s.Dispatch(ActionSubmit)

	assert.Equal(t, EffectRender, effect.Kind)
	assert.Equal(t, StatusReady, s.Status())
	assert.NotEmpty(t, s.Snapshot().Notice)

	s.Dispatch(ActionCursorDown)
	assert.Empty(t, s.Snapshot().Notice, "notice clears on the next action")
}

func TestSession_EmptyCatalogFails(t *testing.T) {
	remote := &MockRemote{}
	remote.On("ListBuckets", mock.Anything).Return([]string{}, nil)
	s := newTestSession(t, DefaultOptions())

	req := s.Begin()
	res := Fetch(context.Background(), NewGateway(remote, nil), req)
	require.True(t, s.Complete(res))

	assert.Equal(t, StatusFailed, s.Status())
	sel, err := s.Result()
	assert.Nil(t, sel)
	assert.True(t, IsEmptyCatalog(err))
	assert.Equal(t, EffectNone, s.Dispatch(ActionSubmit).Kind)
}

func TestSession_ListingFailureAfterNavigation(t *testing.T) {
	s := newTestSession(t, DefaultOptions())
	load(t, s, catalog("bucket1"))
	effect := s.Dispatch(ActionSubmit)

	cause := &Error{Op: "FetchListing", Container: "bucket1", Kind: ErrListingFailure, Err: errors.New("boom")}
	require.True(t, s.Complete(FetchResult{Generation: effect.Fetch.Generation, Err: cause}))

	assert.Equal(t, StatusFailed, s.Status())
	_, err := s.Result()
	assert.True(t, IsListingFailure(err))
}

func TestSession_CursorWraps(t *testing.T) {
	s := newTestSession(t, Options{Container: "b", Prefix: "x/", AllowFolderSelection: true, AllowObjectSelection: true})
	load(t, s, level([]string{"x/a/"}, []string{"x/b"}))

	// [x/a/, x/b, sep, go up, select folder, sep]
	assert.Equal(t, 0, s.Snapshot().SelectedIndex)
	s.Dispatch(ActionCursorUp)
	assert.Equal(t, 4, s.Snapshot().SelectedIndex)
	s.Dispatch(ActionCursorDown)
	assert.Equal(t, 0, s.Snapshot().SelectedIndex)
	s.Dispatch(ActionCursorDown)
	s.Dispatch(ActionCursorDown)
	assert.Equal(t, 3, s.Snapshot().SelectedIndex)
}

func TestSession_InputIgnoredWhileLoading(t *testing.T) {
	s := newTestSession(t, DefaultOptions())
	s.Begin()

	assert.Equal(t, EffectNone, s.Dispatch(ActionSubmit).Kind)
	assert.Equal(t, EffectNone, s.Dispatch(ActionCursorDown).Kind)
	assert.Equal(t, EffectRender, s.Dispatch(ActionOtherKey).Kind)
	assert.Equal(t, StatusLoading, s.Status())
}

func TestSession_OtherKeyOnlyRenders(t *testing.T) {
	s := newTestSession(t, DefaultOptions())
	load(t, s, catalog("bucket1", "bucket2"))
	before := s.State()

	assert.Equal(t, EffectRender, s.Dispatch(ActionOtherKey).Kind)
	assert.Equal(t, before, s.State())
}

func TestSession_StaleResultDiscarded(t *testing.T) {
	s := newTestSession(t, DefaultOptions())
	first := s.Begin()
	second := s.Begin()

	assert.False(t, s.Complete(FetchResult{Generation: first.Generation, Listing: catalog("old")}))
	assert.True(t, s.Complete(FetchResult{Generation: second.Generation, Listing: catalog("new")}))
	assert.Equal(t, MenuEntry{Kind: KindContainer, Value: "new"}, s.Snapshot().Menu[0])
}

func TestSession_LateResultAfterAbortDiscarded(t *testing.T) {
	s := newTestSession(t, DefaultOptions())
	req := s.Begin()

	s.Abort()
	assert.False(t, s.Complete(FetchResult{Generation: req.Generation, Listing: catalog("bucket1")}))

	assert.Equal(t, StatusFailed, s.Status())
	_, err := s.Result()
	assert.True(t, IsAborted(err))
}

func TestSession_TerminalIgnoresInput(t *testing.T) {
	s := newTestSession(t, Options{Container: "b", AllowObjectSelection: true})
	load(t, s, level(nil, []string{"f"}))
	require.Equal(t, EffectDone, s.Dispatch(ActionSubmit).Kind)

	for _, action := range []Action{ActionCursorUp, ActionCursorDown, ActionSubmit, ActionOtherKey, ActionAbort} {
		assert.Equal(t, EffectNone, s.Dispatch(action).Kind, action.String())
	}
	assert.Equal(t, StatusAnswered, s.Status())
}

func TestSession_NothingSelectable(t *testing.T) {
	s := newTestSession(t, Options{Container: "b", AllowObjectSelection: true})
	load(t, s, level(nil, nil))

	effect := s.Dispatch(ActionSubmit)

	assert.Equal(t, EffectRender, effect.Kind)
	assert.Equal(t, StatusReady, s.Status())
	assert.Equal(t, "Nothing to select here", s.Snapshot().Notice)
}

func TestSession_SnapshotDetail(t *testing.T) {
	modified := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	listing := level([]string{"a/"}, []string{"f.txt"})
	listing.Details["f.txt"] = EntryDetail{Size: 10, LastModified: modified}

	s := newTestSession(t, Options{Container: "b", AllowObjectSelection: true})
	load(t, s, listing)
	assert.Nil(t, s.Snapshot().Detail, "folders carry no detail")

	s.Dispatch(ActionCursorDown)
	detail := s.Snapshot().Detail
	require.NotNil(t, detail)
	assert.Equal(t, int64(10), detail.Size)
}

func TestSession_SnapshotMenuIsACopy(t *testing.T) {
	s := newTestSession(t, DefaultOptions())
	load(t, s, catalog("bucket1"))

	snap := s.Snapshot()
	snap.Menu[0].Value = "changed"

	assert.Equal(t, "bucket1", s.Snapshot().Menu[0].Value)
}

func TestRun_CatalogToObject(t *testing.T) {
	lister := &MockLister{}
	lister.On("FetchListing", mock.Anything, "", "").Return(catalog("bucket1", "bucket2"), nil)
	lister.On("FetchListing", mock.Anything, "bucket1", "").Return(level([]string{"a/"}, nil), nil)
	lister.On("FetchListing", mock.Anything, "bucket1", "a/").Return(level(nil, []string{"a/f.txt"}), nil)

	s := newTestSession(t, DefaultOptions())
	actions := make(chan Action)
	snapshots := make(chan Snapshot, 64)

	done := make(chan struct{})
	var sel *Selection
	var err error
	go func() {
		defer close(done)
		sel, err = Run(context.Background(), s, lister, actions, func(snap Snapshot) {
			snapshots <- snap
		})
	}()

	// Wait for each level to load before submitting its first entry
	for i := 0; i < 3; i++ {
		for snap := range snapshots {
			if !snap.IsLoading {
				break
			}
		}
		actions <- ActionSubmit
	}

	<-done
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket1/a/f.txt", sel.URI)
	lister.AssertExpectations(t)
}

func TestRun_ClosedActionsAborts(t *testing.T) {
	lister := &MockLister{}
	lister.On("FetchListing", mock.Anything, "", "").Return(catalog("bucket1"), nil).Maybe()

	s := newTestSession(t, DefaultOptions())
	actions := make(chan Action)
	close(actions)

	sel, err := Run(context.Background(), s, lister, actions, nil)

	assert.Nil(t, sel)
	assert.True(t, IsAborted(err))
}

func TestRun_CancelledContextAborts(t *testing.T) {
	lister := &MockLister{}
	lister.On("FetchListing", mock.Anything, "", "").Return(catalog("bucket1"), nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSession(t, DefaultOptions())
	_, err := Run(ctx, s, lister, make(chan Action), nil)

	assert.True(t, IsAborted(err))
}
