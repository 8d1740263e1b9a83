package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Writer stores rendered schedules on any afs backed location
type Writer struct {
	fs afs.Service
}

// New creates a Writer on the default afs service
func New() *Writer {
	return &Writer{fs: afs.New()}
}

// Resolve turns a plain path into an absolute file location and keeps URLs as given
func Resolve(location string) (string, error) {
	if strings.Contains(location, "://") {
		return location, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", location, err)
	}
	return abs, nil
}

// Write replaces the content at location with text
func (w *Writer) Write(ctx context.Context, location, text string) (string, error) {
	target, err := Resolve(location)
	if err != nil {
		return "", err
	}
	if err := w.fs.Upload(ctx, target, file.DefaultFileOsMode, strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("failed to write schedule to %s: %w", target, err)
	}
	return target, nil
}
