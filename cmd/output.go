package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/HaiFongPan/s3-prompt/internal/browser"
)

// writeSelection prints sel to w in the given format
func writeSelection(w io.Writer, sel *browser.Selection, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sel)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sel); err != nil {
			return err
		}
		return enc.Close()

	case "text", "":
		if _, err := fmt.Fprintln(w, sel.URI); err != nil {
			return err
		}
		if sel.PresignedURL != "" {
			_, err := fmt.Fprintln(w, sel.PresignedURL)
			return err
		}
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
