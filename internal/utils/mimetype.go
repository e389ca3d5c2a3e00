package utils

import (
	"mime"
	"path"
	"strings"
)

// commonTypes covers extensions the system MIME table often lacks
var commonTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".log":  "text/plain",
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".xml":  "application/xml",
	".zip":  "application/zip",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".go":   "text/x-go",
	".py":   "text/x-python",
	".sh":   "application/x-sh",

	".parquet": "application/vnd.apache.parquet",
}

// ContentTypeForKey guesses the MIME type of an object from its key
func ContentTypeForKey(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if ext == "" {
		return "application/octet-stream"
	}

	if contentType, ok := commonTypes[ext]; ok {
		return contentType
	}

	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}

// GetFileCategory returns a general category for the content type
func GetFileCategory(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	case strings.HasPrefix(contentType, "audio/"):
		return "audio"
	case strings.HasPrefix(contentType, "text/x-") || strings.Contains(contentType, "javascript") || strings.Contains(contentType, "x-sh"):
		return "code"
	case strings.HasPrefix(contentType, "text/"):
		return "text"
	case strings.Contains(contentType, "json") || strings.Contains(contentType, "yaml") ||
		strings.Contains(contentType, "xml") || strings.Contains(contentType, "parquet"):
		return "data"
	case strings.Contains(contentType, "pdf"):
		return "document"
	case strings.Contains(contentType, "zip") || strings.Contains(contentType, "tar") || strings.Contains(contentType, "gzip"):
		return "archive"
	default:
		return "other"
	}
}

// CategoryForKey returns the display category of an object key
func CategoryForKey(key string) string {
	return GetFileCategory(ContentTypeForKey(key))
}
