package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MaxKeysLimit is the largest page size S3 accepts for a listing call
const MaxKeysLimit = 1000

// Validate validates the configuration and returns an error if invalid
func Validate(config *Config) error {
	if err := validateS3Config(&config.S3); err != nil {
		return fmt.Errorf("s3 config validation failed: %w", err)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}

	if err := validatePromptConfig(&config.Prompt); err != nil {
		return fmt.Errorf("prompt config validation failed: %w", err)
	}

	return nil
}

func validateS3Config(config *S3Config) error {
	if config.MaxKeys < 1 || config.MaxKeys > MaxKeysLimit {
		return fmt.Errorf("max_keys must be between 1 and %d, got: %d", MaxKeysLimit, config.MaxKeys)
	}

	if config.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative, got: %g", config.RequestsPerSecond)
	}

	if (config.AccessKeyID != "") != (config.SecretAccessKey != "") {
		return fmt.Errorf("access_key_id and secret_access_key must be provided together")
	}

	if strings.TrimSpace(config.PublicHost) == "" {
		return fmt.Errorf("public_host is required")
	}

	if strings.TrimSpace(config.URIScheme) == "" {
		return fmt.Errorf("uri_scheme is required")
	}

	return nil
}

func validateLogConfig(config *LogConfig) error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
		"panic": true,
	}

	level := strings.ToLower(config.Level)
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error, fatal, panic)", config.Level)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}

	format := strings.ToLower(config.Format)
	if !validFormats[format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", config.Format)
	}

	return nil
}

func validatePromptConfig(config *PromptConfig) error {
	if config.Bucket != "" && !isValidBucketName(config.Bucket) {
		return fmt.Errorf("invalid bucket format: %s", config.Bucket)
	}

	if config.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got: %d", config.PageSize)
	}

	if !IsValidOutput(config.Output) {
		return fmt.Errorf("invalid output format: %s (valid: text, json, yaml)", config.Output)
	}

	for _, pattern := range config.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %q", pattern)
		}
	}

	return nil
}

// IsValidOutput reports whether format names a supported result encoding
func IsValidOutput(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json", "yaml":
		return true
	default:
		return false
	}
}

// isValidBucketName checks if the bucket name follows basic S3 naming rules
func isValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}

	// Must start and end with letter or number
	if !isAlphaNum(name[0]) || !isAlphaNum(name[len(name)-1]) {
		return false
	}

	for i, char := range name {
		if !isAlphaNum(byte(char)) && char != '-' && char != '.' {
			return false
		}

		// Cannot have consecutive periods or period-dash combinations
		if i > 0 {
			prev := name[i-1]
			if char == '.' && (prev == '.' || prev == '-') {
				return false
			}
			if char == '-' && prev == '.' {
				return false
			}
		}
	}

	return true
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
