package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/s3-prompt/internal/browser"
	"github.com/HaiFongPan/s3-prompt/internal/s3"
)

// Location parsing errors
var (
	// ErrInvalidURI indicates the location could not be parsed.
	ErrInvalidURI = errors.New("invalid URI")

	// ErrUnsupportedScheme indicates the location uses an unknown scheme.
	ErrUnsupportedScheme = errors.New("unsupported scheme")

	// ErrMissingBucket indicates the location has no bucket name.
	ErrMissingBucket = errors.New("missing bucket name")
)

var (
	showSize bool
	showDate bool
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls [s3://bucket/prefix/]",
	Short: "Print one level of buckets, folders and objects",
	Long: `Print one level of the tree without starting the prompt. With no
location the bucket list is printed. Exclude patterns from the config apply.

Examples:
  s3-prompt ls                          # List buckets
  s3-prompt ls s3://media-assets        # List the bucket root
  s3-prompt ls s3://media-assets/photos # List the photos/ folder
  s3-prompt ls --size=false s3://logs/  # Names and dates only`,
	Args: cobra.MaximumNArgs(1),
	RunE: listLevel,
}

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().BoolVar(&showSize, "size", true, "show object sizes")
	lsCmd.Flags().BoolVar(&showDate, "date", true, "show modification dates")
}

func listLevel(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	var bucket, prefix string
	if len(args) > 0 {
		var err error
		bucket, prefix, err = parseLocation(args[0], cfg.S3.URIScheme)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	client, err := s3.NewClient(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	logrus.Debugf("Listing level %s/%s", bucket, prefix)

	gateway := browser.NewGateway(client, cfg.Prompt.Exclude)
	listing, err := gateway.FetchListing(ctx, bucket, prefix)
	if err != nil {
		return withHint(err)
	}

	if bucket == "" {
		return outputBuckets(os.Stdout, listing)
	}
	return outputTable(os.Stdout, listing, prefix)
}

// parseLocation splits scheme://bucket/prefix into bucket and prefix. A
// non-empty prefix always names a folder and gets a trailing slash.
func parseLocation(uri, scheme string) (bucket, prefix string, err error) {
	if uri == "" {
		return "", "", fmt.Errorf("%w: empty URI", ErrInvalidURI)
	}

	schemeEnd := strings.Index(uri, "://")
	if schemeEnd == -1 {
		return "", "", fmt.Errorf("%w: missing scheme (expected %s://...)", ErrInvalidURI, scheme)
	}

	given := strings.ToLower(uri[:schemeEnd])
	if given != "s3" && given != strings.ToLower(scheme) {
		return "", "", fmt.Errorf("%w: %s (supported: s3, %s)", ErrUnsupportedScheme, given, scheme)
	}

	remainder := uri[schemeEnd+3:]
	bucket, prefix, _ = strings.Cut(remainder, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: in %s", ErrMissingBucket, uri)
	}

	if _, err := url.Parse("s3://" + bucket + "/"); err != nil {
		return "", "", fmt.Errorf("%w: invalid bucket name %q", ErrInvalidURI, bucket)
	}

	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return bucket, prefix, nil
}

func outputBuckets(w io.Writer, listing *browser.Listing) error {
	for _, bucket := range listing.Entries {
		if _, err := fmt.Fprintln(w, bucket); err != nil {
			return err
		}
	}
	return nil
}

func outputTable(w io.Writer, listing *browser.Listing, prefix string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header
	header := "NAME"
	if showSize {
		header += "\tSIZE"
	}
	if showDate {
		header += "\tMODIFIED"
	}
	fmt.Fprintln(tw, header)

	for _, entry := range listing.Entries {
		line := browser.DisplayName(prefix, entry)
		detail, isFile := listing.Details[entry]

		if showSize {
			size := "-"
			if isFile {
				size = humanize.Bytes(uint64(max(detail.Size, 0)))
			}
			line += "\t" + size
		}

		if showDate {
			date := "-"
			if isFile && !detail.LastModified.IsZero() {
				date = detail.LastModified.Format(time.RFC3339)
			}
			line += "\t" + date
		}

		fmt.Fprintln(tw, line)
	}

	return tw.Flush()
}
