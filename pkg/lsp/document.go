package lsp

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/grindlemire/qmlfmt/pkg/formatter"
)

// Document represents an open QML file with its last formatting result.
type Document struct {
	URI     string
	Content string
	Version int
	// Result is the formatting result for Content under the server options.
	Result formatter.FormatResult
}

// DocumentManager tracks all open documents.
type DocumentManager struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentManager creates a new document manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		docs: make(map[string]*Document),
	}
}

// Open opens a new document.
func (dm *DocumentManager) Open(uri, content string, version int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
	}
	dm.docs[uri] = doc
	return doc
}

// Update updates an existing document with new content, opening it if it
// was not open.
func (dm *DocumentManager) Update(uri, content string, version int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		dm.docs[uri] = doc
	}
	doc.Content = content
	doc.Version = version
	return doc
}

// Close closes a document.
func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.docs, uri)
}

// Get retrieves a document by URI.
func (dm *DocumentManager) Get(uri string) *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.docs[uri]
}

// All returns all open documents sorted by URI.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.docs))
	for _, doc := range dm.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].URI < docs[j].URI })
	return docs
}

// Position represents a position in a document (0-indexed, UTF-16 columns).
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range represents a range in a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// lineRange returns the range covering physical line n of content. Lines
// past the end of content collapse to the end of the document.
func lineRange(content string, n int) Range {
	lines := strings.Split(content, "\n")
	if n >= len(lines) {
		end := documentEnd(content)
		return Range{Start: end, End: end}
	}
	return Range{
		Start: Position{Line: n, Character: 0},
		End:   Position{Line: n, Character: utf16Len(strings.TrimSuffix(lines[n], "\r"))},
	}
}

// documentEnd returns the position just past the last character.
func documentEnd(content string) Position {
	lastNL := strings.LastIndexByte(content, '\n')
	return Position{
		Line:      strings.Count(content, "\n"),
		Character: utf16Len(content[lastNL+1:]),
	}
}

// utf16Len returns the length of s in UTF-16 code units, the unit LSP
// columns are measured in.
func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
