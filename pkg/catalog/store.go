package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// Store holds catalogs by name, providing discovery and duplication
// safeguards. Markup generation and the preview component resolve catalogs
// through a store so one data set can back many selects.
type Store struct {
	mu       sync.RWMutex
	catalogs map[string]Catalog
}

// NewStore creates an empty store instance.
func NewStore() *Store {
	return &Store{
		catalogs: make(map[string]Catalog),
	}
}

// Register adds a catalog under name. Duplicate names return an error. The
// catalog is copied, so later changes to the caller's slice do not leak in.
func (s *Store) Register(name string, c Catalog) error {
	if name == "" {
		return fmt.Errorf("catalog: catalog name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.catalogs[name]; exists {
		return fmt.Errorf("catalog: catalog %q already registered", name)
	}

	s.catalogs[name] = c.Clone()
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (s *Store) MustRegister(name string, c Catalog) {
	if err := s.Register(name, c); err != nil {
		panic(err)
	}
}

// Get retrieves a copy of the catalog registered under name.
func (s *Store) Get(name string) (Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("catalog: catalog %q not found", name)
	}
	return c.Clone(), nil
}

// MustGet panics if the catalog is missing.
func (s *Store) MustGet(name string) Catalog {
	c, err := s.Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns a sorted list of catalog names.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.catalogs))
	for name := range s.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a catalog is registered.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.catalogs[name]
	return ok
}
