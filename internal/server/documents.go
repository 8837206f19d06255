package server

import (
	"slices"
	"strings"
	"sync"

	"github.com/sourcegraph/go-lsp"
)

// Document is the state of one open text document.
type Document struct {
	URI        string
	LanguageID string
	Version    int
	Text       string
}

// Documents stores the open documents. Content is fully synchronized: every change
// replaces the whole text.
type Documents struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocuments creates an empty store.
func NewDocuments() *Documents {
	return &Documents{docs: make(map[string]*Document)}
}

// Open records a newly opened document.
func (d *Documents) Open(item lsp.TextDocumentItem) Document {
	doc := &Document{
		URI:        string(item.URI),
		LanguageID: item.LanguageID,
		Version:    item.Version,
		Text:       item.Text,
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[doc.URI] = doc
	return *doc
}

// Change applies full-content changes. It returns false when uri is not open.
func (d *Documents) Change(uri string, version int, changes []lsp.TextDocumentContentChangeEvent) (Document, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, ok := d.docs[uri]
	if !ok {
		return Document{}, false
	}
	if len(changes) > 0 {
		// Only full sync is announced, so the last change holds the whole text.
		doc.Text = changes[len(changes)-1].Text
	}
	doc.Version = version
	return *doc, true
}

// Close forgets uri.
func (d *Documents) Close(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, uri)
}

// Get returns the document stored under uri.
func (d *Documents) Get(uri string) (Document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	doc, ok := d.docs[uri]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// IsOpen reports whether uri is open.
func (d *Documents) IsOpen(uri string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.docs[uri]
	return ok
}

// All returns every open document ordered by URI.
func (d *Documents) All() []Document {
	d.mu.RLock()
	defer d.mu.RUnlock()

	all := make([]Document, 0, len(d.docs))
	for _, doc := range d.docs {
		all = append(all, *doc)
	}
	slices.SortFunc(all, func(a, b Document) int { return strings.Compare(a.URI, b.URI) })
	return all
}
