package document

import (
	"sort"
	"sync"

	"github.com/courseforge/markup/pkg/markup"
)

// Registry maps component names to Components. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	components map[string]markup.Component
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]markup.Component)}
}

// Register adds c under name, replacing any previous registration.
func (r *Registry) Register(name string, c markup.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[name] = c
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (markup.Component, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
