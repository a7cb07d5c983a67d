package pages

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DirStore reads pages from a directory tree.
type DirStore struct {
	root string
}

// NewDirStore creates a DirStore rooted at dir. The directory must exist.
func NewDirStore(dir string) (*DirStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, storeFailure(dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, storeFailure(dir, err)
	}
	if !info.IsDir() {
		return nil, storeFailure(dir, fs.ErrInvalid)
	}
	return &DirStore{root: abs}, nil
}

// Root returns the absolute directory the store reads from.
func (s *DirStore) Root() string {
	return s.root
}

// Get returns the document for name.
func (s *DirStore) Get(ctx context.Context, name string) ([]byte, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(s.root, filepath.FromSlash(name))
	for _, ext := range Extensions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(base + ext)
		if err == nil {
			return data, nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, storeFailure(name, err)
		}
	}
	return nil, notFound(name)
}

// List walks the root and returns every page name.
func (s *DirStore) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		if name, ok := TrimExtension(filepath.ToSlash(rel)); ok {
			seen[name] = true
		}
		return nil
	})
	if err != nil {
		return nil, storeFailure(s.root, err)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
