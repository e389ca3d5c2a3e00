package s3

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// DefaultPresignTTL is the validity of presigned URLs when none is given
const DefaultPresignTTL = time.Hour

// Presign returns a presigned GET URL for bucket/key valid for ttl.
func (c *Client) Presign(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	if c.presigner == nil {
		return "", wrapError("Presign", bucket, key, errors.New("presigning is not configured"))
	}
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}

	request, err := c.presigner.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(opts *awss3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", wrapError("Presign", bucket, key, err)
	}

	logrus.Debugf("Presign: %s/%s valid for %s", bucket, key, ttl)
	return request.URL, nil
}
