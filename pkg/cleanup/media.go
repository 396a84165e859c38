package cleanup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"safetube/cleanup/pkg/catalog"
)

// RemoveOutcome describes what happened to one media path.
type RemoveOutcome int

const (
	// Removed means the file existed and was deleted.
	Removed RemoveOutcome = iota
	// Missing means nothing was at the path.
	Missing
	// Refused means the path was left alone: it escapes the media root or
	// names a directory or special file.
	Refused
	// Failed means the file could not be inspected or deleted.
	Failed
)

func (o RemoveOutcome) String() string {
	switch o {
	case Removed:
		return "removed"
	case Missing:
		return "missing"
	case Refused:
		return "refused"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("RemoveOutcome(%d)", int(o))
	}
}

// MediaRoot resolves catalog paths against the media directory and removes
// the files they name.
type MediaRoot struct {
	root string
}

// NewMediaRoot creates a MediaRoot for dir.
func NewMediaRoot(dir string) *MediaRoot {
	return &MediaRoot{root: filepath.Clean(dir)}
}

// Dir returns the media root directory.
func (m *MediaRoot) Dir() string {
	return m.root
}

// Resolve joins rel onto the media root. Leading separators in rel are kept
// inside the root; paths climbing out of it with ".." are rejected.
func (m *MediaRoot) Resolve(rel string) (string, error) {
	path := filepath.Join(m.root, rel)

	if _, ok := within(m.root, path); !ok {
		return path, fmt.Errorf("%w: %s", catalog.ErrOutsideMediaRoot, rel)
	}

	return path, nil
}

// within reports whether path lies strictly below base and returns it
// relative to base.
func within(base, path string) (string, bool) {
	inside, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	if inside == "." || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", false
	}
	return inside, true
}

// Remove deletes the file rel names. A missing file is not an error. Refused
// and Failed outcomes carry the reason in err.
//
// Directories on the way to the file may be symlinks as long as they resolve
// inside the media root. The file itself is inspected and removed through an
// os.Root, so nothing outside the root is ever touched.
func (m *MediaRoot) Remove(rel string) (string, RemoveOutcome, error) {
	path, err := m.Resolve(rel)
	if err != nil {
		return path, Refused, err
	}
	inside, _ := within(m.root, path)

	outcome, err := m.checkParent(path, rel)
	if outcome != Removed {
		return path, outcome, err
	}

	root, err := os.OpenRoot(m.root)
	if errors.Is(err, fs.ErrNotExist) {
		return path, Missing, nil
	}
	if err != nil {
		return path, Failed, err
	}
	defer root.Close()

	info, err := root.Lstat(inside)
	if errors.Is(err, fs.ErrNotExist) {
		return path, Missing, nil
	}
	if err != nil {
		return path, Failed, err
	}

	// Symlinks are removed as links; the target is never followed.
	mode := info.Mode()
	if !mode.IsRegular() && mode&fs.ModeSymlink == 0 {
		return path, Refused, fmt.Errorf("not a regular file: %s (%s)", path, mode.Type())
	}

	if err := root.Remove(inside); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, Missing, nil
		}
		return path, Failed, err
	}

	return path, Removed, nil
}

// checkParent resolves the directory holding path and refuses it when its
// real location is outside the real media root. It returns Removed when the
// file may be removed.
func (m *MediaRoot) checkParent(path, rel string) (RemoveOutcome, error) {
	realRoot, err := filepath.EvalSymlinks(m.root)
	if errors.Is(err, fs.ErrNotExist) {
		return Missing, nil
	}
	if err != nil {
		return Failed, err
	}

	parent := filepath.Dir(path)
	realParent, err := filepath.EvalSymlinks(parent)
	if errors.Is(err, fs.ErrNotExist) {
		return Missing, nil
	}
	if err != nil {
		return Failed, err
	}

	if realParent == realRoot {
		return Removed, nil
	}
	if _, ok := within(realRoot, realParent); !ok {
		return Refused, fmt.Errorf("%w: %s resolves to %s", catalog.ErrOutsideMediaRoot, rel, realParent)
	}

	return Removed, nil
}
