package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultHistorySize is how many import outcomes are kept when unset.
const DefaultHistorySize = 100

// ImportSummary is the retained record of one import attempt. Job data is not
// kept, only counts.
type ImportSummary struct {
	ImportID    uuid.UUID `json:"import_id"`
	Format      string    `json:"format"`
	Success     bool      `json:"success"`
	Kind        string    `json:"kind,omitempty"`
	Error       string    `json:"error,omitempty"`
	ErrorCode   string    `json:"error_code,omitempty"`
	Bytes       int       `json:"bytes"`
	Jobs        int       `json:"jobs"`
	Skipped     int       `json:"skipped"`
	Diagnostics int       `json:"diagnostics"`
	ClientIP    string    `json:"client_ip,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	DurationMs  int64     `json:"duration_ms"`
}

// History is a fixed-size, in-memory ring of recent import summaries.
type History struct {
	mu      sync.Mutex
	entries []ImportSummary
	next    int
	full    bool
}

// NewHistory creates a history holding up to size entries.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{entries: make([]ImportSummary, size)}
}

// Record stores the outcome of an import. Client details are taken from ctx.
func (h *History) Record(ctx context.Context, id uuid.UUID, format string, size int, elapsed time.Duration, result *ImportResult, err error) {
	summary := ImportSummary{
		ImportID:   id,
		Format:     format,
		Success:    err == nil,
		Bytes:      size,
		ClientIP:   ClientIPFromContext(ctx),
		UserAgent:  UserAgentFromContext(ctx),
		StartedAt:  time.Now().Add(-elapsed),
		DurationMs: elapsed.Milliseconds(),
	}

	if result != nil {
		summary.Jobs = len(result.Jobs)
		summary.Skipped = len(result.Skipped)
	}
	if err != nil {
		summary.Error = err.Error()
		summary.ErrorCode = MapError(err).Code
		if ie, ok := AsImportError(err); ok {
			summary.Kind = ie.Kind.String()
			summary.Diagnostics = len(ie.Diagnostics)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.next] = summary
	h.next = (h.next + 1) % len(h.entries)
	if h.next == 0 {
		h.full = true
	}
}

// Recent returns the stored summaries, newest first.
func (h *History) Recent() []ImportSummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.next
	if h.full {
		n = len(h.entries)
	}

	out := make([]ImportSummary, 0, n)
	for i := 1; i <= n; i++ {
		idx := (h.next - i + len(h.entries)) % len(h.entries)
		out = append(out, h.entries[idx])
	}
	return out
}
