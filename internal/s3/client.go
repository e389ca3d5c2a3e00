// Package s3 wraps the AWS SDK S3 client with the listing calls the prompt
// needs: bucket catalog, one-level delimiter listing and presigning.
package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	appconfig "github.com/HaiFongPan/s3-prompt/internal/config"
)

// DefaultRegion is used for AWS S3 when neither config nor environment set one.
const DefaultRegion = "us-east-1"

// Delimiter groups keys into folder-like prefixes.
const Delimiter = "/"

// API is the subset of the S3 client used for listing.
type API interface {
	ListBuckets(ctx context.Context, params *awss3.ListBucketsInput, optFns ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

// Client wraps the S3 client for listing operations
type Client struct {
	api       API
	presigner *awss3.PresignClient
	limiter   *rate.Limiter
	maxKeys   int32
}

// Option customizes a Client.
type Option func(*Client)

// WithMaxKeys sets the page size of listing calls.
func WithMaxKeys(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= appconfig.MaxKeysLimit {
			c.maxKeys = int32(n)
		}
	}
}

// WithRateLimit caps listing calls to rps requests per second. Zero disables it.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates a new S3 client from configuration
func NewClient(ctx context.Context, cfg *appconfig.S3Config) (*Client, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	logrus.Debugf("S3 client: region=%s endpoint=%q path_style=%t", awsCfg.Region, cfg.Endpoint, cfg.ForcePathStyle)

	client := NewClientWithAPI(s3Client,
		WithMaxKeys(cfg.MaxKeys),
		WithRateLimit(cfg.RequestsPerSecond),
	)
	client.presigner = awss3.NewPresignClient(s3Client)
	return client, nil
}

// NewClientWithAPI wraps an existing API implementation.
func NewClientWithAPI(api API, opts ...Option) *Client {
	c := &Client{
		api:     api,
		maxKeys: appconfig.MaxKeysLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// loadAWSConfig builds the AWS configuration with appropriate credentials.
func loadAWSConfig(ctx context.Context, cfg *appconfig.S3Config) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}

	awsCfg.Region = resolveRegion(awsCfg.Region)
	return awsCfg, nil
}

// resolveRegion falls back to DefaultRegion when the SDK chain found none.
// S3-compatible endpoints still need a region for request signing.
func resolveRegion(sdkRegion string) string {
	if sdkRegion != "" {
		return sdkRegion
	}
	return DefaultRegion
}

// wait blocks until the rate limiter admits one more request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
