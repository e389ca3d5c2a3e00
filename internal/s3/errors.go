package s3

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors for S3 operations.
var (
	ErrAccessDenied       = errors.New("access denied")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrThrottled          = errors.New("request throttled")
	ErrUnavailable        = errors.New("service unavailable")
)

// OpError wraps an S3 failure with the operation and location it happened at.
type OpError struct {
	Op     string
	Bucket string
	Key    string

	// Kind is one of the sentinel errors above, nil when unclassified.
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	cause := e.Err
	if e.Kind != nil {
		cause = fmt.Errorf("%w: %v", e.Kind, e.Err)
	}
	switch {
	case e.Key != "":
		return fmt.Sprintf("s3 %s: %s/%s: %v", e.Op, e.Bucket, e.Key, cause)
	case e.Bucket != "":
		return fmt.Sprintf("s3 %s: %s: %v", e.Op, e.Bucket, cause)
	default:
		return fmt.Sprintf("s3 %s: %v", e.Op, cause)
	}
}

// Unwrap exposes both the classification and the SDK error.
func (e *OpError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

// wrapError converts SDK errors to an OpError carrying a sentinel kind.
func wrapError(op, bucket, key string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Kind:   classify(err),
		Err:    err,
	}
}

func classify(err error) error {
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "AccessDenied", "Forbidden", "AllAccessDisabled":
			return ErrAccessDenied
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
			return ErrInvalidCredentials
		case "SlowDown", "Throttling", "RequestLimitExceeded":
			return ErrThrottled
		case "ServiceUnavailable", "InternalError":
			return ErrUnavailable
		}
		return nil
	}

	// Fallback for transport errors that never reached the API layer
	msg := err.Error()
	switch {
	case strings.Contains(msg, "NoSuchBucket"):
		return ErrBucketNotFound
	case strings.Contains(msg, "AccessDenied") || strings.Contains(msg, "403"):
		return ErrAccessDenied
	case strings.Contains(msg, "SlowDown") || strings.Contains(msg, "429"):
		return ErrThrottled
	case strings.Contains(msg, "ServiceUnavailable") || strings.Contains(msg, "503"):
		return ErrUnavailable
	}
	return nil
}

// IsAccessDenied returns true if the error indicates insufficient permissions.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsBucketNotFound returns true if the error indicates the bucket does not exist.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsInvalidCredentials returns true if the error indicates rejected credentials.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsThrottled returns true if the error indicates request throttling.
func IsThrottled(err error) bool {
	return errors.Is(err, ErrThrottled)
}
