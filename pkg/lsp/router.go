package lsp

import (
	"github.com/grindlemire/qmlfmt/internal/log"
)

// route dispatches a request to the appropriate handler.
func (s *Server) route(req Request) (any, *Error) {
	switch req.Method {
	// Lifecycle
	case "initialize":
		return s.handleInitialize(req.Params)
	case "initialized":
		return s.handleInitialized()
	case "shutdown":
		return s.handleShutdown()
	case "exit":
		s.handleExit()
		return nil, nil

	// Document synchronization
	case "textDocument/didOpen":
		return s.handleDidOpen(req.Params)
	case "textDocument/didChange":
		return s.handleDidChange(req.Params)
	case "textDocument/didClose":
		return s.handleDidClose(req.Params)
	case "textDocument/didSave":
		return s.handleDidSave(req.Params)

	// Language features
	case "textDocument/formatting":
		return s.handleFormatting(req.Params)

	default:
		log.Server("Unknown method: %s", req.Method)
		return nil, &Error{Code: CodeMethodNotFound, Message: "Method not found: " + req.Method}
	}
}
