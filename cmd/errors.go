package cmd

import (
	"fmt"

	"github.com/HaiFongPan/s3-prompt/internal/s3"
)

// errorHint suggests what to check for a classified S3 failure
func errorHint(err error) string {
	switch {
	case s3.IsAccessDenied(err):
		return "the credentials lack permission here (check s3:ListAllMyBuckets, s3:ListBucket and s3:GetObject)"
	case s3.IsBucketNotFound(err):
		return "the bucket does not exist at this endpoint (check --bucket, s3.region and s3.endpoint)"
	case s3.IsInvalidCredentials(err):
		return "the credentials were rejected (check s3.profile or S3PROMPT_ACCESS_KEY_ID and S3PROMPT_SECRET_ACCESS_KEY)"
	case s3.IsThrottled(err):
		return "requests are being throttled (lower s3.requests_per_second or s3.max_keys)"
	default:
		return ""
	}
}

// withHint appends a hint for known S3 failures, keeping err in the chain
func withHint(err error) error {
	if err == nil {
		return nil
	}
	hint := errorHint(err)
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w\nhint: %s", err, hint)
}
