package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"video-streamer/internal/mediatypes"
)

// ErrNotFound is returned when a relative path does not resolve to a file
// or directory beneath the media root. Traversal attempts resolve to the
// same error so a caller cannot distinguish "outside the root" from
// "missing", and the HTTP layer maps both to 404.
var ErrNotFound = errors.New("not found in library")

// SourceFile identifies one file beneath the media root. Rel is the
// request-facing relative path; Path is the absolute on-disk location.
// Size and ModTime are captured at resolution time and are the cache key
// material for thumbnails.
type SourceFile struct {
	Rel     string
	Path    string
	Size    int64
	ModTime time.Time
}

// Listing is the result of listing one directory, non-recursive.
type Listing struct {
	Path   string   `json:"path"`
	Dirs   []string `json:"dirs"`
	Videos []string `json:"videos"`
}

// Library provides confined access to the media root. The root is fixed
// for the lifetime of the process and only ever read from.
type Library struct {
	root string
}

// New resolves and validates the media root. The root must exist and be a
// directory; failing fast here beats serving 404s for every request later.
func New(root string) (*Library, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid media root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("media root %q: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("media root %q is not a directory", abs)
	}
	return &Library{root: abs}, nil
}

// Root returns the absolute media root path.
func (l *Library) Root() string {
	return l.root
}

// Resolve confines rel beneath the root and returns the absolute path.
// Backslashes, absolute paths, and any path whose cleaned form still
// starts with ".." are rejected with ErrNotFound. The check is lexical;
// symlinks inside the tree are followed, so an operator can link external
// storage into the root on purpose.
func (l *Library) Resolve(rel string) (string, error) {
	if strings.Contains(rel, "\\") || strings.ContainsRune(rel, 0) {
		return "", ErrNotFound
	}
	clean := filepath.Clean(rel)
	if clean == "." {
		return l.root, nil
	}
	if filepath.IsAbs(clean) || clean == ".." ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrNotFound
	}
	full := filepath.Join(l.root, clean)
	if !strings.HasPrefix(full, l.root+string(filepath.Separator)) {
		return "", ErrNotFound
	}
	return full, nil
}

// Stat resolves rel and stats it, requiring a regular file.
func (l *Library) Stat(rel string) (SourceFile, error) {
	full, err := l.Resolve(rel)
	if err != nil {
		return SourceFile{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return SourceFile{}, ErrNotFound
	}
	if !info.Mode().IsRegular() {
		return SourceFile{}, ErrNotFound
	}
	return SourceFile{
		Rel:     strings.TrimPrefix(filepath.ToSlash(strings.TrimPrefix(full, l.root)), "/"),
		Path:    full,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// List returns the immediate children of the directory at rel: dotfiles
// hidden, subdirectories and video files only, each group sorted
// case-insensitively. Images are thumbnailable but not listed.
func (l *Library) List(rel string) (Listing, error) {
	full, err := l.Resolve(rel)
	if err != nil {
		return Listing{}, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return Listing{}, ErrNotFound
	}

	listing := Listing{
		Path:   rel,
		Dirs:   []string{},
		Videos: []string{},
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			listing.Dirs = append(listing.Dirs, name)
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if mediatypes.GetFileType(ext) == mediatypes.FileTypeVideo {
			listing.Videos = append(listing.Videos, name)
		}
	}
	caseInsensitive := func(s []string) func(i, j int) bool {
		return func(i, j int) bool { return strings.ToLower(s[i]) < strings.ToLower(s[j]) }
	}
	sort.Slice(listing.Dirs, caseInsensitive(listing.Dirs))
	sort.Slice(listing.Videos, caseInsensitive(listing.Videos))
	return listing, nil
}
