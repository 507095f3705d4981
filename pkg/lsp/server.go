// Package lsp provides a Language Server Protocol implementation that
// formats QML documents and reports unbalanced brackets.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/grindlemire/qmlfmt/internal/log"
	"github.com/grindlemire/qmlfmt/pkg/formatter"
)

// defaultCacheSize bounds the number of memoized formatting results.
const defaultCacheSize = 256

// maxContentLength caps a single message body.
const maxContentLength = 64 << 20

// Server represents the QML LSP server.
type Server struct {
	// Input/output for JSON-RPC communication
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex // protects writer

	docs  *DocumentManager
	opts  formatter.Options
	cache *formatCache

	// fixedIndent ignores the client's tabSize in formatting requests.
	fixedIndent bool

	// Server state
	initialized bool
	shutdown    bool
	rootURI     string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithFixedIndent keeps the indent width from opts even when a client
// sends its own tabSize. Use it when the width was configured explicitly.
func WithFixedIndent() ServerOption {
	return func(s *Server) {
		s.fixedIndent = true
	}
}

// NewServer creates a new LSP server that communicates over the given
// reader/writer and formats with opts unless the client overrides them.
func NewServer(reader io.Reader, writer io.Writer, opts formatter.Options, options ...ServerOption) *Server {
	s := &Server{
		reader: bufio.NewReader(reader),
		writer: writer,
		docs:   NewDocumentManager(),
		opts:   opts,
		cache:  newFormatCache(defaultCacheSize),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Run starts the LSP server main loop.
func (s *Server) Run(ctx context.Context) error {
	log.Server("LSP server starting")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Server("Connection closed")
				return nil
			}
			log.Server("Error reading message: %v", err)
			return fmt.Errorf("reading message: %w", err)
		}

		log.Server("Received: %s", string(msg))

		response, err := s.handleMessage(msg)
		if err != nil {
			log.Server("Error handling message: %v", err)
			continue
		}

		if response != nil {
			if err := s.writeMessage(response); err != nil {
				log.Server("Error writing response: %v", err)
				return fmt.Errorf("writing response: %w", err)
			}
		}

		if s.shutdown {
			log.Server("Server shutdown requested")
			return nil
		}
	}
}

// readMessage reads a JSON-RPC message from the input.
// Messages are formatted as HTTP-like headers followed by content:
// Content-Length: <length>\r\n
// \r\n
// <content>
func (s *Server) readMessage() ([]byte, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "Content-Length:") {
			lenStr := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
			contentLength, err = strconv.Atoi(lenStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	switch {
	case contentLength == 0:
		return nil, fmt.Errorf("missing Content-Length header")
	case contentLength < 0:
		return nil, fmt.Errorf("invalid Content-Length: %d", contentLength)
	case contentLength > maxContentLength:
		return nil, fmt.Errorf("message of %d bytes exceeds limit of %d", contentLength, maxContentLength)
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	return content, nil
}

// writeMessage writes a JSON-RPC message to the output.
func (s *Server) writeMessage(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(msg))
	if _, err := io.WriteString(s.writer, header); err != nil {
		return err
	}
	if _, err := s.writer.Write(msg); err != nil {
		return err
	}

	log.Server("Sent: %s", string(msg))
	return nil
}

// sendNotification sends a notification (no response expected).
func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.writeMessage(data)
}

// Request represents a JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"` // can be number or string
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC response.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Result  any    `json:"result"`
	Error   *Error `json:"error,omitempty"`
}

// Error represents a JSON-RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// handleMessage processes a single JSON-RPC message.
func (s *Server) handleMessage(msg []byte) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return s.errorResponse(nil, CodeParseError, "Parse error")
	}

	log.Server("Handling method: %s", req.Method)

	result, rpcErr := s.route(req)

	// Notifications don't get responses
	if req.ID == nil {
		return nil, nil
	}

	if rpcErr != nil {
		return s.errorResponse(req.ID, rpcErr.Code, rpcErr.Message)
	}

	resp := Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
	return json.Marshal(resp)
}

// errorResponse creates an error response.
func (s *Server) errorResponse(id any, code int, message string) ([]byte, error) {
	resp := Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
	return json.Marshal(resp)
}
