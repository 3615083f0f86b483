// Package library builds playlists from audio files on disk.
package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/app/filter"
	"github.com/osa030/dirbox/internal/domain/playlist"
	"github.com/osa030/dirbox/internal/domain/track"
)

// Errors
var (
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrNotDirectory      = errors.New("not a directory")
)

// ResolveDir expands a leading "~" and returns the absolute, cleaned path.
func ResolveDir(dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "failed to resolve home directory")
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}
	return abs, nil
}

// Scan returns a playlist of the files directly inside dir whose extension
// matches one of exts (case-insensitive) and that pass chain, sorted by file
// name. A nil chain accepts every file. Subdirectories are not descended
// into. An empty playlist is not an error.
func Scan(dir string, exts []string, chain *filter.Chain) (*playlist.Playlist, error) {
	root, err := ResolveDir(dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrDirectoryNotFound, "%s", root)
		}
		return nil, errors.Wrapf(err, "failed to stat %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrNotDirectory, "%s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", root)
	}

	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}

	var tracks []track.Track
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		t := track.New(filepath.Join(root, entry.Name()))
		if !allowed[t.Ext()] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			zlog.Warn().Err(err).Msgf("library: skipping %s", entry.Name())
			continue
		}
		if result := chain.Execute(filter.Candidate{Track: t, Size: info.Size()}); !result.Accepted {
			zlog.Debug().Msgf("library: rejected %s: code=%s", t.Name, result.Code)
			continue
		}
		tracks = append(tracks, t)
	}

	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].Name < tracks[j].Name
	})

	zlog.Debug().Msgf("library: scanned %s: found=%d extensions=%v", root, len(tracks), exts)

	return playlist.New(filepath.Base(root), root, tracks), nil
}
