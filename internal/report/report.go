// Package report is the pipeline's diagnostic channel. Every recoverable
// condition in the acquisition and generation pipeline is surfaced as a
// severity-tagged Diagnostic instead of an error return, so a data problem
// can never fail the surrounding build.
package report

import (
	"log/slog"
	"sync"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Code identifies the condition a diagnostic reports.
type Code string

const (
	CodeCacheDirFailed     Code = "cache-dir-failed"
	CodeCachingDisabled    Code = "caching-disabled"
	CodeDocumentNotFound   Code = "document-not-found"
	CodeAttachmentNotFound Code = "attachment-not-found"
	CodeExtractionFailed   Code = "extraction-failed"
	CodeParseFailed        Code = "parse-failed"
	CodeCancelled          Code = "cancelled"
	CodeCompleted          Code = "completed"
)

// Diagnostic is a single structured notice emitted by the pipeline.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	// Location names the offending resource (URL, file path, attachment
	// name) when one exists.
	Location string
	Err      error
}

// Reporter receives diagnostics from the pipeline.
type Reporter interface {
	Report(d Diagnostic)
}

// LogReporter forwards diagnostics to a slog.Logger.
type LogReporter struct {
	logger *slog.Logger
}

func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(d Diagnostic) {
	attrs := []any{"code", string(d.Code)}
	if d.Location != "" {
		attrs = append(attrs, "location", d.Location)
	}
	if d.Err != nil {
		attrs = append(attrs, "error", d.Err)
	}
	switch d.Severity {
	case SeverityError:
		r.logger.Error(d.Message, attrs...)
	case SeverityWarning:
		r.logger.Warn(d.Message, attrs...)
	default:
		r.logger.Info(d.Message, attrs...)
	}
}

// Recorder captures diagnostics for inspection in tests.
type Recorder struct {
	mu   sync.Mutex
	seen []Diagnostic
}

func (r *Recorder) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, d)
}

// All returns a copy of every diagnostic reported so far.
func (r *Recorder) All() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.seen))
	copy(out, r.seen)
	return out
}

// Has reports whether a diagnostic with the given code was recorded.
func (r *Recorder) Has(code Code) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.seen {
		if d.Code == code {
			return true
		}
	}
	return false
}
