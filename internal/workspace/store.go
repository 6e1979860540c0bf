// Package workspace keeps the pixel-art documents a server session is
// editing.
package workspace

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ironsheep/pixel-art-mcp/internal/pixelart"
)

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("document not found")

	// ErrStoreFull is returned when adding a document would exceed the
	// store's capacity.
	ErrStoreFull = errors.New("document store full")
)

// Store holds open documents keyed by their id.
//
// Store is safe for concurrent use by multiple goroutines. The documents it
// returns are not; callers that share a document across goroutines must
// synchronize access themselves.
//
// # Memory Management
//
// Documents, and the full history each carries, stay in memory until Evict
// or Clear is called. A positive capacity bounds the number of open
// documents.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]*pixelart.Document
	capacity int
}

// NewStore creates an empty store. capacity <= 0 means unlimited.
func NewStore(capacity int) *Store {
	return &Store{
		docs:     make(map[string]*pixelart.Document),
		capacity: capacity,
	}
}

// Add registers doc under its id, replacing any document with the same id.
func (s *Store) Add(doc *pixelart.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[doc.ID()]; !exists && s.capacity > 0 && len(s.docs) >= s.capacity {
		return fmt.Errorf("%w: %d documents open", ErrStoreFull, len(s.docs))
	}
	s.docs[doc.ID()] = doc
	return nil
}

// Get returns the document with the given id.
func (s *Store) Get(id string) (*pixelart.Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return doc, nil
}

// Evict removes the document with the given id. It reports whether a
// document was removed.
func (s *Store) Evict(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.docs[id]
	delete(s.docs, id)
	return ok
}

// Clear removes every document.
func (s *Store) Clear() {
	s.mu.Lock()
	s.docs = make(map[string]*pixelart.Document)
	s.mu.Unlock()
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// IDs returns the ids of all open documents in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids
}
