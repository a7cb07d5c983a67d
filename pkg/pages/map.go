package pages

import (
	"context"
	"sort"
	"sync"
)

// MapStore keeps pages in memory.
type MapStore struct {
	mu    sync.RWMutex
	pages map[string][]byte
}

// NewMapStore creates a MapStore holding a copy of pages.
func NewMapStore(pages map[string]string) *MapStore {
	s := &MapStore{pages: make(map[string][]byte, len(pages))}
	for name, doc := range pages {
		s.pages[name] = []byte(doc)
	}
	return s
}

// Put stores or replaces a page.
func (s *MapStore) Put(name string, doc []byte) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[name] = append([]byte(nil), doc...)
	return nil
}

// Get returns the document for name.
func (s *MapStore) Get(_ context.Context, name string) ([]byte, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.pages[name]
	if !ok {
		return nil, notFound(name)
	}
	return doc, nil
}

// List returns the stored page names.
func (s *MapStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}
