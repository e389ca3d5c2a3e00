package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	S3     S3Config     `mapstructure:"s3"`
	Log    LogConfig    `mapstructure:"log"`
	Prompt PromptConfig `mapstructure:"prompt"`

	userData *UserData
}

// S3Config holds S3 connection and URL rendering configuration
type S3Config struct {
	Region            string  `mapstructure:"region"`
	Endpoint          string  `mapstructure:"endpoint"`
	Profile           string  `mapstructure:"profile"`
	AccessKeyID       string  `mapstructure:"access_key_id"`
	SecretAccessKey   string  `mapstructure:"secret_access_key"`
	ForcePathStyle    bool    `mapstructure:"force_path_style"`
	MaxKeys           int     `mapstructure:"max_keys"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	PublicHost        string  `mapstructure:"public_host"`
	URIScheme         string  `mapstructure:"uri_scheme"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PromptConfig holds the defaults of an interactive prompt session
type PromptConfig struct {
	Bucket               string   `mapstructure:"bucket"`
	Prefix               string   `mapstructure:"prefix"`
	AllowBucketSwitch    bool     `mapstructure:"allow_bucket_switch"`
	AllowFolderSelection bool     `mapstructure:"allow_folder_selection"`
	AllowObjectSelection bool     `mapstructure:"allow_object_selection"`
	Exclude              []string `mapstructure:"exclude"`
	PageSize             int      `mapstructure:"page_size"`
	Output               string   `mapstructure:"output"`
}

// Load loads configuration from multiple sources with priority:
// 1. Command line flags (highest, applied by the caller)
// 2. Environment variables
// 3. Configuration file
// 4. Defaults (lowest)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("S3PROMPT")
	v.AutomaticEnv()

	v.BindEnv("s3.region", "S3PROMPT_REGION", "AWS_REGION")
	v.BindEnv("s3.endpoint", "S3PROMPT_ENDPOINT")
	v.BindEnv("s3.profile", "S3PROMPT_PROFILE", "AWS_PROFILE")
	v.BindEnv("s3.access_key_id", "S3PROMPT_ACCESS_KEY_ID")
	v.BindEnv("s3.secret_access_key", "S3PROMPT_SECRET_ACCESS_KEY")
	v.BindEnv("s3.force_path_style", "S3PROMPT_FORCE_PATH_STYLE")
	v.BindEnv("s3.max_keys", "S3PROMPT_MAX_KEYS")
	v.BindEnv("s3.requests_per_second", "S3PROMPT_REQUESTS_PER_SECOND")
	v.BindEnv("s3.public_host", "S3PROMPT_PUBLIC_HOST")
	v.BindEnv("s3.uri_scheme", "S3PROMPT_URI_SCHEME")
	v.BindEnv("log.level", "S3PROMPT_LOG_LEVEL")
	v.BindEnv("log.format", "S3PROMPT_LOG_FORMAT")
	v.BindEnv("prompt.bucket", "S3PROMPT_BUCKET")
	v.BindEnv("prompt.prefix", "S3PROMPT_PREFIX")
	v.BindEnv("prompt.allow_bucket_switch", "S3PROMPT_ALLOW_BUCKET_SWITCH")
	v.BindEnv("prompt.allow_folder_selection", "S3PROMPT_ALLOW_FOLDER_SELECTION")
	v.BindEnv("prompt.allow_object_selection", "S3PROMPT_ALLOW_OBJECT_SELECTION")
	// Comma separated, as in S3PROMPT_EXCLUDE="tmp/**,**/.DS_Store"
	v.BindEnv("prompt.exclude", "S3PROMPT_EXCLUDE")
	v.BindEnv("prompt.page_size", "S3PROMPT_PAGE_SIZE")
	v.BindEnv("prompt.output", "S3PROMPT_OUTPUT")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.s3-prompt")
		v.AddConfigPath("/etc/s3-prompt/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine, defaults and env still apply
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	userData, err := LoadUserData()
	if err != nil {
		logrus.Warnf("Failed to load user data, using defaults: %v", err)
		userData = createDefaultUserData()
	}
	config.userData = userData

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// S3 defaults
	v.SetDefault("s3.max_keys", 1000)
	v.SetDefault("s3.requests_per_second", 0)
	v.SetDefault("s3.public_host", "s3.amazonaws.com")
	v.SetDefault("s3.uri_scheme", "s3")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Prompt defaults
	v.SetDefault("prompt.allow_bucket_switch", true)
	v.SetDefault("prompt.allow_folder_selection", false)
	v.SetDefault("prompt.allow_object_selection", true)
	v.SetDefault("prompt.page_size", 15)
	v.SetDefault("prompt.output", "text")
}

// GetEffectiveBucket returns the bucket a session starts in: the configured
// prompt bucket, or the persisted main bucket when none is configured.
func (c *Config) GetEffectiveBucket() string {
	if c.Prompt.Bucket != "" {
		return c.Prompt.Bucket
	}
	return c.GetMainBucket()
}

// GetMainBucket returns the persisted main bucket, if any
func (c *Config) GetMainBucket() string {
	if c.userData == nil {
		return ""
	}
	return c.userData.MainBucket
}

// SetMainBucket persists bucket as the main bucket
func (c *Config) SetMainBucket(bucket string) error {
	if !isValidBucketName(bucket) {
		return fmt.Errorf("invalid bucket name: %s", bucket)
	}
	if c.userData == nil {
		c.userData = createDefaultUserData()
	}
	return c.userData.SetMainBucket(bucket)
}

// GetLastUsed returns the bucket and prefix of the last successful selection
func (c *Config) GetLastUsed() (bucket, prefix string) {
	if c.userData == nil {
		return "", ""
	}
	return c.userData.LastUsed.Bucket, c.userData.LastUsed.Prefix
}

// RecordLastUsed persists the location of a successful selection
func (c *Config) RecordLastUsed(bucket, prefix string) error {
	if c.userData == nil {
		c.userData = createDefaultUserData()
	}
	return c.userData.SetLastUsed(bucket, prefix)
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.toml"
	}
	return filepath.Join(homeDir, ".s3-prompt", "config.toml")
}
