package inventory

import (
	"context"

	"github.com/dsjohal14/stockroom/internal/libs/accel"
	"github.com/dsjohal14/stockroom/internal/scope/search"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// MalformedPolicy decides what happens to a matching line without a comma
type MalformedPolicy int

const (
	// SkipMalformed drops the line from the result
	SkipMalformed MalformedPolicy = iota
	// IncludeMalformed emits the whole line as particulars with an empty quantity
	IncludeMalformed
)

// ParseMalformedPolicy maps a configuration name to a policy
func ParseMalformedPolicy(name string) (MalformedPolicy, bool) {
	switch name {
	case "", "skip":
		return SkipMalformed, true
	case "include":
		return IncludeMalformed, true
	default:
		return SkipMalformed, false
	}
}

// Result is the outcome of a query over a set of lines
type Result struct {
	Records []Record
	Scanned int // lines examined
	Matched int // lines where the pattern occurs
	Skipped int // matched lines dropped for having no comma
}

// Service filters inventory lines by a search term
type Service struct {
	matcher *search.Matcher
	batch   *accel.Batch
	workers int
	policy  MalformedPolicy
	logger  zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithWorkers sets how many spans are scanned concurrently. 1 scans serially.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBatchSize sets the number of lines per parallel span
func WithBatchSize(n int) Option {
	return func(s *Service) {
		s.batch = accel.NewBatch(n)
	}
}

// WithMalformedPolicy sets the policy for matching lines without a comma
func WithMalformedPolicy(p MalformedPolicy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a query service. A nil matcher uses search.Default().
func NewService(m *search.Matcher, opts ...Option) *Service {
	if m == nil {
		m = search.Default()
	}
	s := &Service{
		matcher: m,
		batch:   accel.NewBatch(0),
		workers: 1,
		policy:  SkipMalformed,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindMatches returns the records of every line containing pattern, in input order.
func (s *Service) FindMatches(lines []string, pattern string) []Record {
	return s.scan(lines, pattern).Records
}

// Query runs FindMatches with counters, fanning out across spans when the
// input is larger than one batch. Output order always follows input order.
// The only error is ctx cancellation.
func (s *Service) Query(ctx context.Context, lines []string, pattern string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var res Result
	spans := s.batch.Spans(len(lines))
	if s.workers <= 1 || len(spans) <= 1 {
		res = s.scan(lines, pattern)
	} else {
		parts := make([]Result, len(spans))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for i, span := range spans {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				parts[i] = s.scan(lines[span.Start:span.End], pattern)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
		res = merge(parts)
	}

	s.logger.Debug().
		Str("pattern", pattern).
		Int("scanned", res.Scanned).
		Int("matched", res.Matched).
		Int("skipped", res.Skipped).
		Int("spans", len(spans)).
		Msg("inventory query completed")

	return res, nil
}

func (s *Service) scan(lines []string, pattern string) Result {
	res := Result{Scanned: len(lines)}
	for _, line := range lines {
		if !s.matcher.Contains(line, pattern) {
			continue
		}
		res.Matched++

		rec, ok := ParseLine(line)
		if !ok {
			if s.policy != IncludeMalformed {
				res.Skipped++
				continue
			}
			rec = Record{Particulars: line}
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

func merge(parts []Result) Result {
	var out Result
	for _, p := range parts {
		out.Records = append(out.Records, p.Records...)
		out.Scanned += p.Scanned
		out.Matched += p.Matched
		out.Skipped += p.Skipped
	}
	return out
}
