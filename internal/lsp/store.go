package lsp

import (
	"sort"
	"sync"
)

// Document is an open editor buffer.
type Document struct {
	URI     string
	Path    string
	Text    string
	Version int32
}

type Store struct {
	mu   sync.RWMutex
	docs map[string]Document // uri -> document
}

func NewStore() *Store {
	return &Store{docs: map[string]Document{}}
}

func (s *Store) Set(uri, text string, version int32) Document {
	doc := Document{URI: uri, Path: UriToPath(uri), Text: text, Version: version}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = doc
	return doc
}

func (s *Store) Get(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[uri]
	return d, ok
}

func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// URIs lists the open documents, sorted.
func (s *Store) URIs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		out = append(out, uri)
	}
	sort.Strings(out)
	return out
}
