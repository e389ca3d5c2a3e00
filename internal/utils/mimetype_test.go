package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"photos/cat.JPG", "image"},
		{"videos/intro.mp4", "video"},
		{"notes/readme.md", "text"},
		{"src/main.go", "code"},
		{"exports/data.json", "data"},
		{"exports/table.parquet", "data"},
		{"docs/report.pdf", "document"},
		{"backups/site.tar", "archive"},
		{"bin/blob", "other"},
		{"weird.dir/noext", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryForKey(tt.key))
		})
	}
}
