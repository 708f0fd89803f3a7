package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/moriyoshi/delimscan"
	"github.com/moriyoshi/delimscan/internal/logging"
	"github.com/moriyoshi/delimscan/sink"
	"github.com/moriyoshi/delimscan/types"
)

// Input is a named source of bytes.
type Input struct {
	Name   string
	Reader io.Reader
}

// Extractor runs one Scanner per input according to a Profile.
type Extractor struct {
	profile     Profile
	concurrency int
	logger      *slog.Logger
}

type ExtractorOptionFunc func(*Extractor) (*Extractor, error)

func WithLogger(logger *slog.Logger) ExtractorOptionFunc {
	return func(e *Extractor) (*Extractor, error) {
		e.logger = logging.OrBlackhole(logger)
		return e, nil
	}
}

// WithConcurrency bounds the number of inputs ExtractAll scans at once.
func WithConcurrency(n int) ExtractorOptionFunc {
	return func(e *Extractor) (*Extractor, error) {
		if n <= 0 {
			return nil, fmt.Errorf("concurrency must be positive: %d", n)
		}
		e.concurrency = n
		return e, nil
	}
}

func NewExtractor(profile Profile, options ...ExtractorOptionFunc) (*Extractor, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	e := &Extractor{
		profile:     profile,
		concurrency: 1,
		logger:      slog.New(logging.BlackholeHandler{}),
	}
	for _, option := range options {
		var err error
		e, err = option(e)
		if err != nil {
			return nil, err
		}
	}
	e.logger.Debug(
		"extractor created",
		slog.String("mode", string(profile.Mode)),
		slog.String("delimiter", profile.Delimiter),
		slog.Bool("literal", profile.Literal),
		slog.Int("radix", profile.Radix),
	)
	return e, nil
}

func (e *Extractor) Profile() Profile {
	return e.profile
}

func (e *Extractor) next(s *delimscan.Scanner, name string, index int) (types.Record, bool, error) {
	mode := e.profile.Mode
	var text string
	var ok bool
	var err error
	if mode == types.ModeLines {
		text, ok, err = s.NextLine()
	} else {
		text, ok, err = s.Next()
	}
	if !ok || err != nil {
		return types.Record{}, false, err
	}
	switch mode {
	case types.ModeInts:
		v, valid := s.ParseInt(text)
		return types.NewIntRecord(name, index, text, v, valid), true, nil
	case types.ModeFloats:
		v, valid := s.ParseFloat(text)
		return types.NewFloatRecord(name, index, text, v, valid), true, nil
	}
	return types.NewTextRecord(name, index, mode, text), true, nil
}

// Extract scans r and emits every record to dst. It returns the number of
// records emitted. ctx is checked between records; a read that blocks in r
// is not interrupted.
func (e *Extractor) Extract(ctx context.Context, name string, r io.Reader, dst types.Sink) (int, error) {
	logger := e.logger.With(slog.String("source", name))
	s, err := e.profile.NewScanner(r, logger)
	if err != nil {
		return 0, err
	}
	index := 0
	for {
		if err := ctx.Err(); err != nil {
			return index, err
		}
		rec, ok, err := e.next(s, name, index)
		if err != nil {
			logger.Warn("scan failed", slog.Int("records", index), slog.Any("error", err))
			return index, fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			break
		}
		if !rec.Valid {
			logger.Debug("malformed number", slog.Int("index", index), slog.String("text", rec.Text))
		}
		if err := dst.Emit(rec); err != nil {
			return index, err
		}
		index++
	}
	logger.Info("input scanned", slog.Int("records", index))
	return index, nil
}

// ExtractAll scans inputs concurrently and emits their records to dst in
// input order. A failing input does not stop the others; the records it
// produced before failing are still emitted and all failures are returned
// together.
func (e *Extractor) ExtractAll(ctx context.Context, inputs []Input, dst types.Sink) error {
	stores := make([]sink.Store, len(inputs))
	errs := make([]error, len(inputs))

	var eg errgroup.Group
	eg.SetLimit(e.concurrency)
	for i, input := range inputs {
		eg.Go(func() error {
			_, errs[i] = e.Extract(ctx, input.Name, input.Reader, &stores[i])
			return nil
		})
	}
	eg.Wait()

	var result *multierror.Error
	for i := range inputs {
		if err := stores[i].Replay(dst); err != nil {
			return multierror.Append(result, err).ErrorOrNil()
		}
		if errs[i] != nil {
			result = multierror.Append(result, errs[i])
		}
	}
	return result.ErrorOrNil()
}
