package lsp

import (
	"encoding/json"

	"github.com/grindlemire/qmlfmt/internal/log"
)

// DocumentFormattingParams represents textDocument/formatting parameters.
type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Options      FormattingOptions      `json:"options"`
}

// FormattingOptions represents formatting options.
type FormattingOptions struct {
	TabSize                int  `json:"tabSize"`
	InsertSpaces           bool `json:"insertSpaces"`
	TrimTrailingWhitespace bool `json:"trimTrailingWhitespace,omitempty"`
	InsertFinalNewline     bool `json:"insertFinalNewline,omitempty"`
	TrimFinalNewlines      bool `json:"trimFinalNewlines,omitempty"`
}

// TextEdit represents a text edit.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// handleFormatting handles textDocument/formatting requests.
func (s *Server) handleFormatting(params json.RawMessage) (any, *Error) {
	var p DocumentFormattingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("Formatting request for %s", p.TextDocument.URI)

	doc := s.docs.Get(p.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	// The formatter only emits spaces, so the client's tab size is honored
	// only when it asks for spaces and no width was pinned by configuration.
	opts := s.opts
	if !s.fixedIndent && p.Options.InsertSpaces && p.Options.TabSize > 0 {
		opts.IndentWidth = p.Options.TabSize
	}

	res, err := s.cache.format(doc.Content, opts)
	if err != nil {
		log.Server("Formatting error: %v", err)
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}

	// If nothing changed, return empty edits
	if !res.Changed {
		return []TextEdit{}, nil
	}

	// Return a single edit that replaces the entire document
	return []TextEdit{
		{
			Range: Range{
				Start: Position{Line: 0, Character: 0},
				End:   documentEnd(doc.Content),
			},
			NewText: res.Content,
		},
	}, nil
}
