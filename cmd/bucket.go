package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// bucketCmd groups bucket preference commands
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage bucket preferences",
}

// bucketMainCmd shows or sets the main bucket
var bucketMainCmd = &cobra.Command{
	Use:   "main [bucket]",
	Short: "Show or set the bucket the prompt starts in",
	Long: `Show or set the main bucket. The prompt starts inside the main bucket
when neither --bucket nor prompt.bucket is given. The value is stored in
~/.s3-prompt/user.data.

Examples:
  s3-prompt bucket main               # Print the main bucket
  s3-prompt bucket main media-assets  # Set the main bucket`,
	Args: cobra.MaximumNArgs(1),
	RunE: mainBucket,
}

func init() {
	bucketCmd.AddCommand(bucketMainCmd)
	rootCmd.AddCommand(bucketCmd)
}

func mainBucket(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if len(args) == 0 {
		bucket := cfg.GetMainBucket()
		if bucket == "" {
			return fmt.Errorf("no main bucket set")
		}
		fmt.Fprintln(cmd.OutOrStdout(), bucket)
		return nil
	}

	logrus.Infof("Setting main bucket: %s", args[0])
	if err := cfg.SetMainBucket(args[0]); err != nil {
		return fmt.Errorf("failed to set main bucket: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Main bucket set to %s\n", args[0])
	return nil
}
