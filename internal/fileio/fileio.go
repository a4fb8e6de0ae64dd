package fileio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePermissions is the mode used for files written by Disk
const FilePermissions = 0644

// FS reads and writes whole text files
type FS interface {
	ReadTextFile(path string) (string, error)
	WriteTextFile(path, content string) error
}

// Filter narrows a file dialog to a set of extensions
type Filter struct {
	Name       string
	Extensions []string // without the leading dot
}

// Matches reports whether path carries one of the filter's extensions
func (f Filter) Matches(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range f.Extensions {
		if e == "*" || strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// DocumentFilters are offered by open and save dialogs
var DocumentFilters = []Filter{
	{Name: "Markdown", Extensions: []string{"md", "markdown"}},
	{Name: "Text", Extensions: []string{"txt"}},
}

// MatchesAny reports whether path passes at least one filter. No filters
// accept everything.
func MatchesAny(filters []Filter, path string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if f.Matches(path) {
			return true
		}
	}
	return false
}

// Dialogs asks the user for paths. ok is false when the dialog was
// cancelled.
type Dialogs interface {
	OpenFile(ctx context.Context, filters []Filter) (path string, ok bool)
	SaveFile(ctx context.Context, filters []Filter, suggested string) (path string, ok bool)
}

// Disk is the FS backed by the local filesystem
type Disk struct{}

// ReadTextFile implements FS
func (Disk) ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteTextFile implements FS. Missing parent directories are not created.
func (Disk) WriteTextFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EnsureExtension appends ext when path has no extension at all
func EnsureExtension(path, ext string) string {
	if ext == "" || filepath.Ext(path) != "" {
		return path
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path + ext
}

// Title returns the display name for a bound path
func Title(path string) string {
	return filepath.Base(path)
}
