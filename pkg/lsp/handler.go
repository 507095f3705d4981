package lsp

import (
	"encoding/json"

	"github.com/grindlemire/qmlfmt/internal/log"
)

// InitializeParams represents the parameters for the initialize request.
type InitializeParams struct {
	ProcessID             *int               `json:"processId"`
	RootURI               string             `json:"rootUri"`
	RootPath              string             `json:"rootPath"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	InitializationOptions json.RawMessage    `json:"initializationOptions,omitempty"`
}

// ClientCapabilities represents client capabilities.
type ClientCapabilities struct {
	TextDocument TextDocumentClientCapabilities `json:"textDocument,omitempty"`
}

// TextDocumentClientCapabilities represents text document capabilities.
type TextDocumentClientCapabilities struct {
	Synchronization    *SynchronizationCapabilities `json:"synchronization,omitempty"`
	Formatting         *FormattingCapabilities      `json:"formatting,omitempty"`
	PublishDiagnostics *PublishDiagnostics          `json:"publishDiagnostics,omitempty"`
}

// SynchronizationCapabilities represents synchronization capabilities.
type SynchronizationCapabilities struct {
	DynamicRegistration bool `json:"dynamicRegistration,omitempty"`
	WillSave            bool `json:"willSave,omitempty"`
	WillSaveWaitUntil   bool `json:"willSaveWaitUntil,omitempty"`
	DidSave             bool `json:"didSave,omitempty"`
}

// FormattingCapabilities represents formatting capabilities.
type FormattingCapabilities struct {
	DynamicRegistration bool `json:"dynamicRegistration,omitempty"`
}

// PublishDiagnostics represents publish diagnostics capabilities.
type PublishDiagnostics struct {
	RelatedInformation bool `json:"relatedInformation,omitempty"`
}

// InitializeResult represents the result of the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// ServerInfo identifies the server to the client.
type ServerInfo struct {
	Name string `json:"name"`
}

// ServerCapabilities represents server capabilities.
type ServerCapabilities struct {
	TextDocumentSync           *TextDocumentSyncOptions `json:"textDocumentSync,omitempty"`
	DocumentFormattingProvider bool                     `json:"documentFormattingProvider,omitempty"`
}

// TextDocumentSyncOptions represents text document sync options.
type TextDocumentSyncOptions struct {
	OpenClose bool                 `json:"openClose"`
	Change    TextDocumentSyncKind `json:"change"`
	Save      *SaveOptions         `json:"save,omitempty"`
}

// TextDocumentSyncKind represents how documents are synced.
type TextDocumentSyncKind int

const (
	// TextDocumentSyncKindNone means documents should not be synced.
	TextDocumentSyncKindNone TextDocumentSyncKind = 0
	// TextDocumentSyncKindFull means full documents are synced.
	TextDocumentSyncKindFull TextDocumentSyncKind = 1
	// TextDocumentSyncKindIncremental means incremental updates are sent.
	TextDocumentSyncKindIncremental TextDocumentSyncKind = 2
)

// SaveOptions represents save options.
type SaveOptions struct {
	IncludeText bool `json:"includeText,omitempty"`
}

// handleInitialize handles the initialize request.
func (s *Server) handleInitialize(params json.RawMessage) (any, *Error) {
	var p InitializeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	s.rootURI = p.RootURI
	log.Server("Initialize with root: %s", s.rootURI)

	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save: &SaveOptions{
					IncludeText: true,
				},
			},
			DocumentFormattingProvider: true,
		},
		ServerInfo: &ServerInfo{Name: "qmlfmt"},
	}, nil
}

// handleInitialized handles the initialized notification.
func (s *Server) handleInitialized() (any, *Error) {
	s.initialized = true
	log.Server("Server initialized")
	return nil, nil
}

// handleShutdown handles the shutdown request.
func (s *Server) handleShutdown() (any, *Error) {
	log.Server("Shutdown requested")
	s.shutdown = true
	return nil, nil
}

// handleExit handles the exit notification. A client that skips shutdown
// still stops the server.
func (s *Server) handleExit() {
	log.Server("Exit requested")
	s.shutdown = true
}

// DidOpenParams represents textDocument/didOpen parameters.
type DidOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentItem represents an item passed in didOpen.
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// handleDidOpen handles textDocument/didOpen.
func (s *Server) handleDidOpen(params json.RawMessage) (any, *Error) {
	var p DidOpenParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("Document opened: %s", p.TextDocument.URI)

	doc := s.docs.Open(p.TextDocument.URI, p.TextDocument.Text, p.TextDocument.Version)
	s.analyze(doc)
	s.publishDiagnostics(doc)

	return nil, nil
}

// DidChangeParams represents textDocument/didChange parameters.
type DidChangeParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// VersionedTextDocumentIdentifier represents a versioned document ID.
type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

// TextDocumentContentChangeEvent represents a content change.
type TextDocumentContentChangeEvent struct {
	// Full text sync: Text contains the whole document
	Text string `json:"text"`
}

// handleDidChange handles textDocument/didChange.
func (s *Server) handleDidChange(params json.RawMessage) (any, *Error) {
	var p DidChangeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("Document changed: %s", p.TextDocument.URI)

	if len(p.ContentChanges) == 0 {
		return nil, nil
	}

	// We use full document sync, so take the last change
	newContent := p.ContentChanges[len(p.ContentChanges)-1].Text
	doc := s.docs.Update(p.TextDocument.URI, newContent, p.TextDocument.Version)
	s.analyze(doc)
	s.publishDiagnostics(doc)

	return nil, nil
}

// DidCloseParams represents textDocument/didClose parameters.
type DidCloseParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// TextDocumentIdentifier represents a document identifier.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// handleDidClose handles textDocument/didClose.
func (s *Server) handleDidClose(params json.RawMessage) (any, *Error) {
	var p DidCloseParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("Document closed: %s", p.TextDocument.URI)

	s.docs.Close(p.TextDocument.URI)

	// Clear diagnostics for closed document
	if err := s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         p.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	}); err != nil {
		log.Server("Error clearing diagnostics: %v", err)
	}

	return nil, nil
}

// DidSaveParams represents textDocument/didSave parameters.
type DidSaveParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Text         *string                `json:"text,omitempty"`
}

// handleDidSave handles textDocument/didSave.
func (s *Server) handleDidSave(params json.RawMessage) (any, *Error) {
	var p DidSaveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("Document saved: %s", p.TextDocument.URI)

	// If text is provided, update the document
	if p.Text != nil {
		if doc := s.docs.Get(p.TextDocument.URI); doc != nil {
			doc = s.docs.Update(p.TextDocument.URI, *p.Text, doc.Version+1)
			s.analyze(doc)
			s.publishDiagnostics(doc)
		}
	}

	return nil, nil
}

// analyze formats the document under the server options and records the
// result for diagnostics.
func (s *Server) analyze(doc *Document) {
	res, err := s.cache.format(doc.Content, s.opts)
	if err != nil {
		log.Server("Cannot analyze %s: %v", doc.URI, err)
		return
	}
	doc.Result = res
}
