package s3

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// Object is a file entry of a listing level
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Level is one delimiter level under a prefix: the immediate sub-prefixes
// and the objects stored directly at the prefix. Keys are full keys.
type Level struct {
	Folders []string
	Files   []Object
}

// ListBuckets returns the names of all buckets visible to the credentials
func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	logrus.Debug("ListBuckets: fetching bucket catalog")

	paginator := awss3.NewListBucketsPaginator(c.api, &awss3.ListBucketsInput{})

	var buckets []string
	for paginator.HasMorePages() {
		if err := c.wait(ctx); err != nil {
			return nil, wrapError("ListBuckets", "", "", err)
		}

		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapError("ListBuckets", "", "", err)
		}

		for _, bucket := range page.Buckets {
			if name := aws.ToString(bucket.Name); name != "" {
				buckets = append(buckets, name)
			}
		}
	}

	sort.Strings(buckets)
	logrus.Debugf("ListBuckets: found %d buckets", len(buckets))
	return buckets, nil
}

// ListLevel lists one level of bucket under prefix using the "/" delimiter.
// An empty prefix lists the bucket root. Any other prefix is sent as is, so
// "/" lists the keys below the folder named "/".
func (c *Client) ListLevel(ctx context.Context, bucket, prefix string) (*Level, error) {
	logrus.Debugf("ListLevel: bucket=%s prefix=%q", bucket, prefix)

	input := &awss3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Delimiter: aws.String(Delimiter),
		MaxKeys:   aws.Int32(c.maxKeys),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := awss3.NewListObjectsV2Paginator(c.api, input)

	level := &Level{}
	pages := 0
	for paginator.HasMorePages() {
		if err := c.wait(ctx); err != nil {
			return nil, wrapError("ListLevel", bucket, prefix, err)
		}

		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapError("ListLevel", bucket, prefix, err)
		}
		pages++

		for _, cp := range page.CommonPrefixes {
			if p := aws.ToString(cp.Prefix); p != "" {
				level.Folders = append(level.Folders, p)
			}
		}

		for _, obj := range page.Contents {
			level.Files = append(level.Files, Object{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	logrus.Debugf("ListLevel: bucket=%s prefix=%q pages=%d folders=%d files=%d",
		bucket, prefix, pages, len(level.Folders), len(level.Files))
	return level, nil
}
