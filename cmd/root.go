package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/s3-prompt/internal/browser"
	"github.com/HaiFongPan/s3-prompt/internal/config"
	"github.com/HaiFongPan/s3-prompt/internal/s3"
	"github.com/HaiFongPan/s3-prompt/internal/tui"
	"github.com/HaiFongPan/s3-prompt/internal/utils"
)

var (
	cfgFile      string
	verbose      bool
	quiet        bool
	globalConfig *config.Config

	promptBucket   string
	promptPrefix   string
	noBucketSwitch bool
	selectFolder   bool
	noSelectObject bool
	resumeLast     bool
	outputFormat   string
	presignTTL     time.Duration
	copyResult     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s3-prompt",
	Short: "Interactively pick an S3 object or folder",
	Long: `S3-Prompt is an interactive terminal prompt for choosing an object or a
folder in S3 (or any S3-compatible storage). It walks buckets and prefixes one
level at a time and prints the chosen location on stdout, so it composes with
other tools.

Example usage:
  s3-prompt                              # Start at the bucket list
  s3-prompt -b media-assets -p photos/   # Start inside a bucket
  s3-prompt -b logs --no-bucket-switch --select-folder --no-select-object
  aws s3 cp "$(s3-prompt)" .             # Use the chosen URI
  s3-prompt -o json --presign 15m        # JSON result with a presigned URL
  s3-prompt ls s3://media-assets/photos/ # Print one level without the prompt`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runPrompt,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		fmt.Sprintf("config file (default is %s)", config.GetDefaultConfigPath()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode")

	// Prompt flags
	rootCmd.Flags().StringVarP(&promptBucket, "bucket", "b", "", "bucket to start in (overrides config)")
	rootCmd.Flags().StringVarP(&promptPrefix, "prefix", "p", "", "prefix to start in, requires a bucket")
	rootCmd.Flags().BoolVar(&noBucketSwitch, "no-bucket-switch", false, "stay inside the starting bucket")
	rootCmd.Flags().BoolVar(&selectFolder, "select-folder", false, "allow selecting folders")
	rootCmd.Flags().BoolVar(&noSelectObject, "no-select-object", false, "do not allow selecting objects")
	rootCmd.Flags().BoolVar(&resumeLast, "resume", false, "start where the last selection was made")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "result format: text, json or yaml (default from config)")
	rootCmd.Flags().DurationVar(&presignTTL, "presign", 0, "add a presigned GET URL valid for this long to object selections")
	rootCmd.Flags().BoolVar(&copyResult, "copy", false, "copy the selected URI to the clipboard")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	globalConfig, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Configure logging
	setupLogging()

	return nil
}

// setupLogging configures the global logger based on config and flags
func setupLogging() {
	// Set log level
	level := globalConfig.Log.Level
	if verbose {
		level = "debug"
	} else if quiet {
		level = "error"
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level %s, using info", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	// Redirect all logs to file to prevent UI interference
	logDir := filepath.Join(os.TempDir(), "s3-prompt")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		// Fallback to stderr if can't create log directory
		logrus.Warnf("Failed to create log directory %s: %v", logDir, err)
	} else {
		logFile := filepath.Join(logDir, "app.log")
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file %s: %v", logFile, err)
		} else {
			logrus.SetOutput(file)
		}
	}

	// Set log format
	if globalConfig.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: quiet,
			FullTimestamp:    verbose,
		})
	}
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return globalConfig
}

// runPrompt runs the interactive picker and prints the selection
func runPrompt(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	format := cfg.Prompt.Output
	if cmd.Flags().Changed("output") {
		format = outputFormat
	}
	if !config.IsValidOutput(format) {
		return fmt.Errorf("invalid output format: %s (valid: text, json, yaml)", format)
	}

	opts := promptOptions(cfg, promptFlags{
		bucket:         promptBucket,
		bucketSet:      cmd.Flags().Changed("bucket"),
		prefix:         promptPrefix,
		prefixSet:      cmd.Flags().Changed("prefix"),
		noBucketSwitch: noBucketSwitch,
		selectFolder:   selectFolder,
		noSelectObject: noSelectObject,
		resume:         resumeLast,
	})

	urls := browser.URLConfig{Host: cfg.S3.PublicHost, Scheme: cfg.S3.URIScheme}

	// Invalid option combinations fail here, before any request is made
	session, err := browser.NewSession(opts, urls)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := s3.NewClient(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	gateway := browser.NewGateway(client, cfg.Prompt.Exclude)
	model := tui.NewPickerModel(ctx, session, gateway, cfg.Prompt.PageSize)

	// The UI draws on stderr so stdout carries only the result
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	sel, err := model.Result()
	if err != nil {
		return withHint(err)
	}
	if sel == nil {
		return browser.ErrAborted
	}

	if presignTTL > 0 && !sel.IsFolder {
		url, err := client.Presign(ctx, sel.Container, sel.RelativePath, presignTTL)
		if err != nil {
			return withHint(fmt.Errorf("failed to presign %s: %w", sel.URI, err))
		}
		sel.PresignedURL = url
	}

	if err := cfg.RecordLastUsed(sel.Container, locationPrefix(sel)); err != nil {
		logrus.Warnf("Failed to remember last location: %v", err)
	}

	if copyResult {
		if err := utils.CopyToClipboard(sel.URI); err != nil {
			logrus.Warnf("Failed to copy %s: %v", sel.URI, err)
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	return writeSelection(os.Stdout, sel, format)
}

// promptFlags holds the prompt flags as given on the command line
type promptFlags struct {
	bucket         string
	bucketSet      bool
	prefix         string
	prefixSet      bool
	noBucketSwitch bool
	selectFolder   bool
	noSelectObject bool
	resume         bool
}

// promptOptions merges flags over config into session options.
// Bucket priority: --bucket > --resume > prompt.bucket > main bucket.
func promptOptions(cfg *config.Config, flags promptFlags) browser.Options {
	bucket := cfg.GetEffectiveBucket()
	prefix := cfg.Prompt.Prefix
	if bucket != cfg.Prompt.Bucket {
		// The configured prefix belongs to the configured bucket only
		prefix = ""
	}

	if flags.resume {
		if lastBucket, lastPrefix := cfg.GetLastUsed(); lastBucket != "" {
			bucket, prefix = lastBucket, lastPrefix
		}
	}

	if flags.bucketSet {
		bucket = flags.bucket
		prefix = ""
	}
	if flags.prefixSet {
		prefix = flags.prefix
	}

	return browser.Options{
		Container:            bucket,
		Prefix:               prefix,
		AllowContainerSwitch: cfg.Prompt.AllowBucketSwitch && !flags.noBucketSwitch,
		AllowFolderSelection: cfg.Prompt.AllowFolderSelection || flags.selectFolder,
		AllowObjectSelection: cfg.Prompt.AllowObjectSelection && !flags.noSelectObject,
	}
}

// locationPrefix returns the folder a selection was made in
func locationPrefix(sel *browser.Selection) string {
	if sel.IsFolder {
		return sel.RelativePath
	}
	// Keys are not cleaned: "/a.txt" lives in the folder "/"
	return sel.RelativePath[:strings.LastIndex(sel.RelativePath, "/")+1]
}
