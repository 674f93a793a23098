package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vaultpass/pwtool/internal/crypto"
	"github.com/vaultpass/pwtool/internal/model"
)

const (
	DefaultCount = 1
	MaxCount     = 1000
)

var ErrCountTooLarge = errors.New("password count must be at most 1000")

type historyRecorder interface {
	Create(ctx context.Context, rec *model.GenerationRecord) error
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen     *crypto.Generator
	history historyRecorder
	workers int
}

// NewGeneratorService creates a new GeneratorService. A nil history disables
// recording; workers above 1 spread a batch over that many goroutines.
func NewGeneratorService(gen *crypto.Generator, history historyRecorder, workers int) *GeneratorService {
	if workers < 1 {
		workers = 1
	}
	return &GeneratorService{gen: gen, history: history, workers: workers}
}

// Generate produces a batch of passwords. When userID is non-zero the batch
// metadata is added to the user's history.
func (s *GeneratorService) Generate(ctx context.Context, userID int64, req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := crypto.GeneratorOptions{
		Length:    req.Length,
		NoSpecial: req.NoSpecial,
		Specials:  req.Specials,
	}
	if opts.Length == 0 {
		opts.Length = crypto.MinLength
	}

	count := req.Count
	if count == 0 {
		count = DefaultCount
	}
	if count > MaxCount {
		return model.GenerateResponse{}, ErrCountTooLarge
	}

	passwords, err := s.generate(ctx, count, opts)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	if userID != 0 && s.history != nil {
		s.record(ctx, userID, count, opts)
	}

	return model.GenerateResponse{
		Passwords: passwords,
		Length:    opts.Length,
		Count:     len(passwords),
	}, nil
}

func (s *GeneratorService) generate(ctx context.Context, count int, opts crypto.GeneratorOptions) ([]string, error) {
	if s.workers == 1 || count < 2 {
		return s.gen.GenerateBatch(count, opts)
	}

	// The entropy source is shared; it must be safe for concurrent use.
	passwords := make([]string, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range passwords {
		i := i // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pw, err := s.gen.Generate(opts)
			if err != nil {
				return err
			}
			passwords[i] = pw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return passwords, nil
}

func (s *GeneratorService) record(ctx context.Context, userID int64, count int, opts crypto.GeneratorOptions) {
	rec := &model.GenerationRecord{
		BatchID:        uuid.NewString(),
		UserID:         userID,
		Length:         opts.Length,
		Count:          count,
		NoSpecial:      opts.NoSpecial,
		CustomSpecials: !opts.NoSpecial && opts.Specials != "",
	}
	if err := s.history.Create(ctx, rec); err != nil {
		slog.Warn("recording generation history failed", "user_id", userID, "batch_id", rec.BatchID, "error", err)
	}
}

// IsValidationError reports whether err was caused by the request.
func IsValidationError(err error) bool {
	return crypto.IsValidationError(err) || errors.Is(err, ErrCountTooLarge)
}
