package web

// errors.go provides unified error responses for the web layer.
//
// Every error is:
//   - Logged with full technical details and the request ID (server-side)
//   - Returned as an ImportResponse envelope with a user-facing message,
//     a support code from core.MapError, and schema diagnostics when present

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/jobimport/internal/core"
	"github.com/JonMunkholm/jobimport/internal/logging"
)

var errRateLimited = errors.New("rate limit exceeded")

// ImportResponse is the body of every /api/import response, success or not.
// XMLErrors and Jobs are always arrays, never null.
type ImportResponse struct {
	Success   bool              `json:"success"`
	Errors    string            `json:"errors"`
	XMLErrors []core.Diagnostic `json:"xml_errors"`
	Jobs      []core.JobRecord  `json:"jobs"`
	Skipped   []core.SkippedJob `json:"skipped,omitempty"`
	ImportID  string            `json:"import_id,omitempty"`
	Code      string            `json:"code,omitempty"`
	Action    string            `json:"action,omitempty"`
}

// respondError logs err and writes it as a failed ImportResponse.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	userMsg := core.MapError(err)

	resp := ImportResponse{
		Success:   false,
		Errors:    userMsg.Message,
		XMLErrors: []core.Diagnostic{},
		Jobs:      []core.JobRecord{},
		Code:      userMsg.Code,
		Action:    userMsg.Action,
	}

	if ie, ok := core.AsImportError(err); ok {
		// The import error's own message is already client-safe and, for
		// incomplete jobs, names the offending jobs and fields.
		resp.Errors = ie.Message
		if diags, ok := core.DiagnosticsOf(err); ok {
			resp.XMLErrors = diags
		}
	}

	logging.FromContext(r.Context()).Log(r.Context(), logging.LevelForStatus(status), "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	writeJSON(w, r, status, resp)
}

// statusFor maps an import failure to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case core.IsBusy(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	}

	if ie, ok := core.AsImportError(err); ok {
		switch ie.Kind {
		case core.KindSchemaViolation, core.KindMalformedInput,
			core.KindIncompleteRecord, core.KindUnsupportedFormat:
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, core.ErrMissingInput) || errors.Is(err, core.ErrUnsupportedFormat) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
