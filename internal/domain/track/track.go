// Package track provides the Track domain entity.
package track

import (
	"path/filepath"
	"strings"
)

// Track represents a playable audio file.
// Tracks are created by the library scan and never mutated afterwards.
type Track struct {
	Name string // File name shown to the user
	Path string // Absolute path to the audio file
}

// New creates a Track for the file at path, using its base name as display name.
func New(path string) Track {
	return Track{
		Name: filepath.Base(path),
		Path: path,
	}
}

// Ext returns the lower-cased file extension including the leading dot.
func (t Track) Ext() string {
	return strings.ToLower(filepath.Ext(t.Path))
}

// String returns the display name.
func (t Track) String() string {
	return t.Name
}
