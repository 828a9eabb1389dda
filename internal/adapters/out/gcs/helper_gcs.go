// internal/adapters/out/gcs/helper_gcs.go
package gcs

import (
	"errors"
	"net/url"
	"strings"
)

var errInvalidObjectPath = errors.New("image_store_gcs: invalid object path")

// sanitizePathSegment normalizes a path segment for GCS object paths.
// - removes separators
// - trims dots/spaces
func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.Trim(s, ". ")
	return s
}

// cleanObjectPath validates "a/b/c" style keys (no empty or dot segments).
func cleanObjectPath(key string) (string, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(key), "/"), "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return "", errInvalidObjectPath
		}
		if sanitizePathSegment(p) == "" {
			return "", errInvalidObjectPath
		}
		out = append(out, p)
	}
	return strings.Join(out, "/"), nil
}

// escapeObjectPath escapes each segment but keeps "/" separators.
func escapeObjectPath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
