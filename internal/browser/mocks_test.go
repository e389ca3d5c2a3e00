package browser

import (
	"context"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"

	"github.com/HaiFongPan/s3-prompt/internal/s3"
)

// MockRemote is a mock implementation of Remote
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) ListBuckets(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if buckets := args.Get(0); buckets != nil {
		return buckets.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRemote) ListLevel(ctx context.Context, bucket, prefix string) (*s3.Level, error) {
	args := m.Called(ctx, bucket, prefix)
	if level := args.Get(0); level != nil {
		return level.(*s3.Level), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockS3API is a mock implementation of s3.API, used to run a Gateway over
// a real s3.Client
type MockS3API struct {
	mock.Mock
}

func (m *MockS3API) ListBuckets(ctx context.Context, params *awss3.ListBucketsInput, optFns ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*awss3.ListBucketsOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3API) ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*awss3.ListObjectsV2Output), args.Error(1)
	}
	return nil, args.Error(1)
}

// withPrefix matches a ListObjectsV2 request for prefix, "" meaning no prefix.
func withPrefix(prefix string) any {
	return mock.MatchedBy(func(in *awss3.ListObjectsV2Input) bool {
		if prefix == "" {
			return in.Prefix == nil
		}
		return in.Prefix != nil && *in.Prefix == prefix
	})
}

// MockLister is a mock implementation of Lister
type MockLister struct {
	mock.Mock
}

func (m *MockLister) FetchListing(ctx context.Context, container, prefix string) (*Listing, error) {
	args := m.Called(ctx, container, prefix)
	if listing := args.Get(0); listing != nil {
		return listing.(*Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

// catalog builds a bucket catalog listing.
func catalog(buckets ...string) *Listing {
	l := newListing()
	l.Entries = append(l.Entries, buckets...)
	return l
}

// level builds a listing of folders followed by files.
func level(folders []string, files []string) *Listing {
	l := newListing()
	for _, f := range folders {
		l.Folders[f] = struct{}{}
		l.Entries = append(l.Entries, f)
	}
	for _, f := range files {
		l.Files[f] = struct{}{}
		l.Entries = append(l.Entries, f)
	}
	return l
}
