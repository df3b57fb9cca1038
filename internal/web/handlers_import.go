package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/JonMunkholm/jobimport/internal/core"
	"github.com/JonMunkholm/jobimport/internal/logging"
)

// multipartOverhead is allowed on top of the document size limit for the
// format field, part headers, and boundaries.
const multipartOverhead = 64 << 10

// handleImport accepts a multipart form with a "format" text field and a
// "file" part, and responds with the assembled jobs or the failure.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.service.MaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	format, data, err := readImportForm(r, maxSize)
	if err != nil {
		logging.FromContext(r.Context()).Warn("import request rejected", "error", err)
		respondError(w, r, err, statusFor(err))
		return
	}

	logger := logging.WithFields(r.Context(), "format", format, "bytes", len(data))
	logger.Info("import requested")

	result, err := s.service.Import(r.Context(), format, data)
	if err != nil {
		logger.Warn("import failed", "error", err)
		respondError(w, r, err, statusFor(err))
		return
	}

	logger.Info("import succeeded",
		"import_id", result.ImportID,
		"jobs", len(result.Jobs),
		"skipped", len(result.Skipped),
		"duration_ms", result.Duration.Milliseconds(),
	)

	writeJSON(w, r, http.StatusOK, ImportResponse{
		Success:   true,
		Errors:    "",
		XMLErrors: []core.Diagnostic{},
		Jobs:      result.Jobs,
		Skipped:   result.Skipped,
		ImportID:  result.ImportID.String(),
	})
}

// maxFormatLen bounds the format field; no registered key comes close.
const maxFormatLen = 256

// readImportForm streams the multipart body, keeping the format field and
// the file contents. Other parts are discarded. A missing format or file
// yields core.ErrMissingInput.
func readImportForm(r *http.Request, maxSize int64) (string, []byte, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", core.ErrMissingInput, err)
	}

	var format string
	var data []byte
	var haveFile bool

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, formReadError(err)
		}

		switch part.FormName() {
		case "format":
			value, err := core.ReadLimited(part, maxFormatLen)
			if errors.Is(err, core.ErrFileTooLarge) {
				return "", nil, fmt.Errorf("%w: format name exceeds %d bytes", core.ErrUnsupportedFormat, maxFormatLen)
			}
			if err != nil {
				return "", nil, formReadError(err)
			}
			format = strings.TrimSpace(string(value))
		case "file":
			data, err = core.ReadLimited(part, maxSize)
			if err != nil {
				return "", nil, formReadError(err)
			}
			haveFile = true
		default:
			_, _ = io.Copy(io.Discard, part)
		}
		part.Close()
	}

	if format == "" || !haveFile || len(data) == 0 {
		return "", nil, core.ErrMissingInput
	}
	return format, data, nil
}

func formReadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || errors.Is(err, core.ErrFileTooLarge) {
		return fmt.Errorf("%w: %v", core.ErrFileTooLarge, err)
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		return fmt.Errorf("%w: %v", core.ErrFileTooLarge, err)
	}
	return fmt.Errorf("%w: %v", core.ErrMissingInput, err)
}
