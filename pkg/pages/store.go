package pages

import (
	"context"
	"path"
	"strings"

	"github.com/courseforge/markup/internal/errors"
)

// Extensions are the document extensions a Store recognizes, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// ErrNotFound is returned when a page doesn't exist. Match it with errors.Is.
var ErrNotFound = errors.New(errors.CodePageNotFound)

// ErrInvalidName is returned for page names rejected by CleanName.
var ErrInvalidName = errors.New(errors.CodeInvalidPage)

// Store provides page documents by name.
type Store interface {
	// Get returns the raw document for name.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns every page name in sorted order.
	List(ctx context.Context) ([]string, error)
}

// CleanName validates a page name and returns its canonical form. Names
// may not be empty, absolute, or climb out of the store root.
func CleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.ContainsAny(name, "\\\x00") {
		return "", invalidName(name)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", invalidName(name)
	}
	return cleaned, nil
}

// TrimExtension strips a recognized document extension from file.
func TrimExtension(file string) (string, bool) {
	for _, ext := range Extensions {
		if strings.HasSuffix(file, ext) {
			return strings.TrimSuffix(file, ext), true
		}
	}
	return "", false
}

func invalidName(name string) *errors.Error {
	return errors.New(errors.CodeInvalidPage).WithDetailf("%q", name)
}

func notFound(name string) *errors.Error {
	return errors.New(errors.CodePageNotFound).WithDetailf("%q", name)
}

func storeFailure(name string, err error) *errors.Error {
	return errors.New(errors.CodeStoreFailure).WithDetailf("%q", name).Wrap(err)
}
