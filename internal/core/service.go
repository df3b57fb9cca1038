package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxFileSize is the document size limit used when none is configured.
const DefaultMaxFileSize int64 = 20 << 20

// ImportResult is the outcome of one successful import.
type ImportResult struct {
	ImportID uuid.UUID     `json:"import_id" yaml:"import_id"`
	Format   string        `json:"format" yaml:"format"`
	Jobs     []JobRecord   `json:"jobs" yaml:"jobs"`
	Skipped  []SkippedJob  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// ServiceOptions tunes a Service. Zero values select the defaults.
type ServiceOptions struct {
	MaxFileSize   int64
	MaxConcurrent int
	MaxWait       time.Duration
	HistorySize   int
}

// Service runs imports against the registered formats. It bounds document
// size and the number of concurrent imports, and remembers recent outcomes.
type Service struct {
	registry    *Registry
	limiter     *ImportLimiter
	history     *History
	maxFileSize int64
}

// NewService creates a Service over registry.
func NewService(registry *Registry, opts ServiceOptions) *Service {
	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	return &Service{
		registry:    registry,
		limiter:     NewImportLimiter(opts.MaxConcurrent, opts.MaxWait),
		history:     NewHistory(opts.HistorySize),
		maxFileSize: maxFileSize,
	}
}

// Formats returns the importable formats sorted by key.
func (s *Service) Formats() []FormatInfo {
	defs := s.registry.All()
	infos := make([]FormatInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// MaxFileSize returns the largest document Import accepts, in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// Import validates data as format and assembles its jobs.
//
// The format is resolved before a limiter slot is taken, so requests for
// unknown formats never wait. Every attempt, successful or not, is recorded
// in the history.
func (s *Service) Import(ctx context.Context, format string, data []byte) (*ImportResult, error) {
	start := time.Now()
	id := uuid.New()

	result, err := s.runImport(ctx, id, format, data)
	s.history.Record(ctx, id, format, len(data), time.Since(start), result, err)
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (s *Service) runImport(ctx context.Context, id uuid.UUID, format string, data []byte) (*ImportResult, error) {
	if format == "" || len(data) == 0 {
		return nil, ErrMissingInput
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(data), s.maxFileSize)
	}

	def, ok := s.registry.Get(format)
	if !ok {
		return nil, unsupportedFormat(format)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("acquire import slot: %w", err)
	}
	defer s.limiter.Release()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := def.Parse(data)
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		ImportID: id,
		Format:   format,
		Jobs:     parsed.Jobs,
		Skipped:  parsed.Skipped,
	}, nil
}

// ImportReader reads at most MaxFileSize bytes from r and imports them.
// A longer stream fails with ErrFileTooLarge without being fully read.
func (s *Service) ImportReader(ctx context.Context, format string, r io.Reader) (*ImportResult, error) {
	data, err := ReadLimited(r, s.maxFileSize)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, format, data)
}

// ReadLimited reads all of r, failing with ErrFileTooLarge once more than
// limit bytes have been seen.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: exceeds limit of %d bytes", ErrFileTooLarge, limit)
	}
	return data, nil
}

// History returns the most recent import outcomes, newest first.
func (s *Service) History() []ImportSummary {
	return s.history.Recent()
}

// LimiterStatus reports import slot usage.
func (s *Service) LimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until in-flight imports finish or ctx ends.
func (s *Service) WaitForImports(ctx context.Context) error {
	if err := s.limiter.WaitForDrain(ctx); err != nil {
		return fmt.Errorf("wait for imports: %w", err)
	}
	return nil
}

// IsBusy reports whether err means the service had no free import slot.
func IsBusy(err error) bool {
	return errors.Is(err, ErrTooManyImports)
}
