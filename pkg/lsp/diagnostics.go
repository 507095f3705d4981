package lsp

import "github.com/grindlemire/qmlfmt/internal/log"

// DiagnosticSeverity represents the severity of a diagnostic.
type DiagnosticSeverity int

const (
	// DiagnosticSeverityError reports an error.
	DiagnosticSeverityError DiagnosticSeverity = 1
	// DiagnosticSeverityWarning reports a warning.
	DiagnosticSeverityWarning DiagnosticSeverity = 2
	// DiagnosticSeverityInformation reports an information.
	DiagnosticSeverityInformation DiagnosticSeverity = 3
	// DiagnosticSeverityHint reports a hint.
	DiagnosticSeverityHint DiagnosticSeverity = 4
)

// Diagnostic represents a diagnostic, such as a compiler error or warning.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     string             `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// PublishDiagnosticsParams represents the parameters for publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Version     *int         `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// diagnosticCode tags every bracket warning.
const diagnosticCode = "unbalanced-brackets"

// diagnostics converts the document's bracket imbalances into warnings on
// the physical lines they came from.
func diagnostics(doc *Document) []Diagnostic {
	diags := make([]Diagnostic, 0, len(doc.Result.Imbalances))
	for _, im := range doc.Result.Imbalances {
		line := doc.Result.SourceLine(im.Line)
		diags = append(diags, Diagnostic{
			Range:    lineRange(doc.Content, line),
			Severity: DiagnosticSeverityWarning,
			Code:     diagnosticCode,
			Source:   "qmlfmt",
			Message:  im.Message(),
		})
	}
	return diags
}

// publishDiagnostics sends diagnostics for a document.
func (s *Server) publishDiagnostics(doc *Document) {
	if doc == nil {
		return
	}

	version := doc.Version
	params := PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: diagnostics(doc),
	}

	if err := s.sendNotification("textDocument/publishDiagnostics", params); err != nil {
		log.Server("Error publishing diagnostics: %v", err)
	}
}
