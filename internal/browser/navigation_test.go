package browser

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewState(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want State
	}{
		{
			name: "catalog",
			opts: DefaultOptions(),
			want: State{},
		},
		{
			name: "bucket with switching",
			opts: Options{Container: "b", AllowContainerSwitch: true, AllowObjectSelection: true},
			want: State{Container: "b", Depth: 1},
		},
		{
			name: "locked bucket",
			opts: Options{Container: "b", AllowObjectSelection: true},
			want: State{Container: "b"},
		},
		{
			name: "locked bucket with prefix",
			opts: Options{Container: "b", Prefix: "a/sub", AllowObjectSelection: true},
			want: State{Container: "b", Prefix: "a/sub/", Depth: 2},
		},
		{
			name: "bucket with switching and prefix",
			opts: Options{Container: "b", Prefix: "/a/", AllowContainerSwitch: true, AllowObjectSelection: true},
			want: State{Container: "b", Prefix: "a/", Depth: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewState(tt.opts))
		})
	}
}

func TestAdvance_PickBucketFromCatalog(t *testing.T) {
	next := Advance(State{}, MenuEntry{Kind: KindContainer, Value: "bucket1"}, DefaultOptions())

	assert.Equal(t, State{Container: "bucket1", Depth: 1}, next)
}

func TestAdvance_DescendIntoFolder(t *testing.T) {
	state := State{Container: "b", Prefix: "a/", Depth: 1, SelectedIndex: 3}

	next := Advance(state, MenuEntry{Kind: KindFolder, Value: "a/sub/"}, DefaultOptions())

	assert.Equal(t, State{Container: "b", Prefix: "a/sub/", Depth: 2}, next)
}

func TestAdvance_GoUpRecomputesParent(t *testing.T) {
	state := State{Container: "b", Prefix: "a/sub/", Depth: 2}

	next := Advance(state, goUpEntry, DefaultOptions())

	assert.Equal(t, State{Container: "b", Prefix: "a/", Depth: 1}, next)
}

func TestAdvance_GoUpToCatalog(t *testing.T) {
	state := State{Container: "b", Depth: 1}

	next := Advance(state, goUpEntry, DefaultOptions())

	assert.Equal(t, State{}, next)
}

func TestAdvance_GoUpKeepsLockedBucket(t *testing.T) {
	opts := Options{Container: "b", AllowObjectSelection: true}
	state := State{Container: "b", Prefix: "a/", Depth: 1}

	next := Advance(state, goUpEntry, opts)

	assert.Equal(t, State{Container: "b"}, next)
}

func TestAdvance_GoUpNeverNegative(t *testing.T) {
	opts := Options{Container: "b", AllowObjectSelection: true}

	next := Advance(State{Container: "b"}, goUpEntry, opts)

	assert.Equal(t, 0, next.Depth)
	assert.Equal(t, "b", next.Container)
}

func TestAdvance_NonNavigationalLeavesStateAlone(t *testing.T) {
	state := State{Container: "b", Prefix: "a/", Depth: 1, SelectedIndex: 2}

	for _, choice := range []MenuEntry{
		{Kind: KindFile, Value: "a/f.txt"},
		selectFolderEntry,
		separatorEntry,
	} {
		assert.Equal(t, state, Advance(state, choice, DefaultOptions()), choice.Kind.String())
	}
}

func TestAdvance_RoundTrip(t *testing.T) {
	opts := DefaultOptions()
	prefixes := []string{"", "a/", "a/b/", "x/./y/", "deep/er/still/"}

	for _, prefix := range prefixes {
		t.Run(prefix, func(t *testing.T) {
			state := State{Container: "b", Prefix: prefix, Depth: 1 + segmentCount(prefix)}
			child := prefix + "child/"

			down := Advance(state, MenuEntry{Kind: KindFolder, Value: child}, opts)
			up := Advance(down, goUpEntry, opts)

			assert.Equal(t, state.Prefix, up.Prefix)
			assert.Equal(t, state.Depth, up.Depth)
			assert.Equal(t, state.Container, up.Container)
		})
	}
}

func TestAdvance_DotSegments(t *testing.T) {
	opts := Options{Container: "b", AllowObjectSelection: true}
	state := NewState(Options{Container: "b", Prefix: "./x/", AllowObjectSelection: true})
	assert.Equal(t, 2, state.Depth)

	up := Advance(state, goUpEntry, opts)
	assert.Equal(t, State{Container: "b", Prefix: "./", Depth: 1}, up, "a literal dot folder is a real prefix")

	root := Advance(up, goUpEntry, opts)
	assert.Equal(t, State{Container: "b"}, root)
}

func TestAdvance_LeadingSlashSegments(t *testing.T) {
	opts := Options{Container: "b", AllowObjectSelection: true}
	state := NewState(Options{Container: "b", Prefix: "/logs", AllowObjectSelection: true})
	assert.Equal(t, State{Container: "b", Prefix: "/logs/", Depth: 2}, state, "the leading slash is part of the key")

	up := Advance(state, goUpEntry, opts)
	assert.Equal(t, State{Container: "b", Prefix: "/", Depth: 1}, up)

	root := Advance(up, goUpEntry, opts)
	assert.Equal(t, State{Container: "b"}, root)
}

func TestAdvance_DepthInvariantOnRandomWalks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	configs := []Options{
		DefaultOptions(),
		{Container: "b", AllowObjectSelection: true},
		{Container: "b", Prefix: "a/b/", AllowContainerSwitch: true, AllowFolderSelection: true},
	}

	for _, opts := range configs {
		state := NewState(opts)
		for step := 0; step < 500; step++ {
			var choice MenuEntry
			switch {
			case rng.Intn(3) == 0:
				choice = goUpEntry
			case state.Container == "":
				choice = MenuEntry{Kind: KindContainer, Value: "bucket"}
			default:
				choice = MenuEntry{Kind: KindFolder, Value: state.Prefix + "d/"}
			}

			state = Advance(state, choice, opts)

			assert.GreaterOrEqual(t, state.Depth, 0)
			if state.Depth == 0 {
				assert.Empty(t, state.Prefix)
			}
			if !opts.AllowContainerSwitch {
				assert.Equal(t, opts.Container, state.Container)
			}
			if state.Prefix != "" {
				assert.NotEmpty(t, state.Container)
			}
		}
	}
}

func TestParentPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"a/", ""},
		{"a/b/", "a/"},
		{"a/b/c/", "a/b/"},
		{"./", ""},
		{"./x/", "./"},
		{"a//", "a/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parentPrefix(tt.in))
		})
	}
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "a/f.txt", joinKey("a/", "a/f.txt"))
	assert.Equal(t, "a/f.txt", joinKey("a/", "f.txt"))
	assert.Equal(t, "f.txt", joinKey("", "f.txt"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "sub/", DisplayName("a/", "a/sub/"))
	assert.Equal(t, "f.txt", DisplayName("a/", "a/f.txt"))
	assert.Equal(t, "bucket1", DisplayName("", "bucket1"))
}
