// Package docstore holds the session's uploaded documents in memory.
//
// Document identity is a sha1 over (display name, extracted character
// count), truncated to 12 hex chars. Two uploads with the same name and the
// same text length collapse to one document — a cheap dedup heuristic, not
// a content hash.
package docstore

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"doc-chat-be/pkg/extract"
)

// ErrEmptyContent marks an upload whose extraction yielded only whitespace.
var ErrEmptyContent = errors.New("document has no extractable text")

type Document struct {
	Name    string
	Content string
}

type Entry struct {
	ID       string
	Document Document
}

// Store is an insertion-ordered map of document id to document. It is not
// safe for concurrent use; the owning session serializes access.
type Store struct {
	docs  map[string]Document
	order []string
}

func NewStore() *Store {
	return &Store{
		docs: make(map[string]Document),
	}
}

// DocID derives the deterministic document id for a display name and its
// extracted text.
func DocID(name, content string) string {
	h := sha1.New()
	h.Write([]byte(name))
	h.Write([]byte(strconv.Itoa(utf8.RuneCountInString(content))))
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// Ingest extracts text from an upload and stores it under its derived id.
// Re-ingesting an identical (name, length) pair overwrites in place and
// keeps the original listing position.
func (s *Store) Ingest(data []byte, fileName, mimeHint string) (string, error) {
	content, err := extract.Extract(data, fileName, mimeHint)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, fileName)
	}

	id := DocID(fileName, content)
	if _, exists := s.docs[id]; !exists {
		s.order = append(s.order, id)
	}
	s.docs[id] = Document{Name: fileName, Content: content}

	return id, nil
}

func (s *Store) Get(id string) (Document, bool) {
	doc, ok := s.docs[id]
	return doc, ok
}

// List returns all documents in insertion order. The order is stable across
// calls so toggle layouts stay put between renders.
func (s *Store) List() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, Entry{ID: id, Document: s.docs[id]})
	}
	return entries
}

func (s *Store) Len() int {
	return len(s.order)
}
