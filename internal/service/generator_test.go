package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/vaultpass/pwtool/internal/crypto"
	"github.com/vaultpass/pwtool/internal/model"
)

type fakeHistory struct {
	mu      sync.Mutex
	records []model.GenerationRecord
	err     error
}

func (f *fakeHistory) Create(_ context.Context, rec *model.GenerationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	rec.ID = int64(len(f.records) + 1)
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeHistory) ListByUser(_ context.Context, userID int64, limit int) ([]model.GenerationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []model.GenerationRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func newTestGeneratorService(history historyRecorder, workers int) *GeneratorService {
	return NewGeneratorService(crypto.NewGenerator(crypto.SystemSource()), history, workers)
}

func TestGenerate_Defaults(t *testing.T) {
	svc := newTestGeneratorService(nil, 1)
	resp, err := svc.Generate(context.Background(), 0, model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 16 {
		t.Errorf("expected length 16, got %d", resp.Length)
	}
	if resp.Count != 1 || len(resp.Passwords) != 1 {
		t.Fatalf("expected 1 password, got %d", len(resp.Passwords))
	}
	if len(resp.Passwords[0]) != 16 {
		t.Errorf("expected password length 16, got %d", len(resp.Passwords[0]))
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := newTestGeneratorService(nil, 1)
	resp, err := svc.Generate(context.Background(), 0, model.GenerateRequest{
		Length:    32,
		Count:     5,
		NoSpecial: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Count != 5 {
		t.Errorf("expected count 5, got %d", resp.Count)
	}
	for _, pw := range resp.Passwords {
		if len(pw) != 32 {
			t.Errorf("expected password length 32, got %d", len(pw))
		}
		for _, c := range pw {
			if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
				t.Errorf("unexpected character %q in password without specials", c)
			}
		}
	}
}

func TestGenerate_ParallelWorkers(t *testing.T) {
	svc := newTestGeneratorService(nil, 4)
	resp, err := svc.Generate(context.Background(), 0, model.GenerateRequest{Length: 20, Count: 64, Specials: "#"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 64 {
		t.Fatalf("expected 64 passwords, got %d", len(resp.Passwords))
	}
	for _, pw := range resp.Passwords {
		if len(pw) != 20 {
			t.Errorf("expected password length 20, got %d", len(pw))
		}
		if strings.Count(pw, "#") < crypto.MinPerClass {
			t.Errorf("password %q is missing the custom special", pw)
		}
	}
}

func TestGenerate_LengthTooShort(t *testing.T) {
	svc := newTestGeneratorService(nil, 1)
	_, err := svc.Generate(context.Background(), 0, model.GenerateRequest{Length: 15})
	if !errors.Is(err, crypto.ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if !IsValidationError(err) {
		t.Error("expected a validation error")
	}
}

func TestGenerate_LengthTooShortParallel(t *testing.T) {
	svc := newTestGeneratorService(nil, 3)
	_, err := svc.Generate(context.Background(), 0, model.GenerateRequest{Length: 8, Count: 10})
	if !errors.Is(err, crypto.ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestGenerate_CountLimits(t *testing.T) {
	svc := newTestGeneratorService(nil, 1)

	_, err := svc.Generate(context.Background(), 0, model.GenerateRequest{Count: MaxCount + 1})
	if !errors.Is(err, ErrCountTooLarge) {
		t.Fatalf("expected ErrCountTooLarge, got %v", err)
	}

	_, err = svc.Generate(context.Background(), 0, model.GenerateRequest{Count: -1})
	if !errors.Is(err, crypto.ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
}

func TestGenerate_InvalidSpecials(t *testing.T) {
	svc := newTestGeneratorService(nil, 1)
	_, err := svc.Generate(context.Background(), 0, model.GenerateRequest{Specials: "\x00"})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerate_EntropyFailure(t *testing.T) {
	svc := NewGeneratorService(crypto.NewGenerator(crypto.NewReaderSource(failingReader{})), nil, 2)
	_, err := svc.Generate(context.Background(), 0, model.GenerateRequest{Count: 3})
	if !errors.Is(err, crypto.ErrEntropyUnavailable) {
		t.Fatalf("expected ErrEntropyUnavailable, got %v", err)
	}
	if IsValidationError(err) {
		t.Error("entropy failure must not be reported as a validation error")
	}
}

func TestGenerate_RecordsHistory(t *testing.T) {
	history := &fakeHistory{}
	svc := newTestGeneratorService(history, 1)

	if _, err := svc.Generate(context.Background(), 7, model.GenerateRequest{Length: 24, Count: 3, Specials: "#%"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(history.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history.records))
	}
	rec := history.records[0]
	if rec.UserID != 7 || rec.Length != 24 || rec.Count != 3 || !rec.CustomSpecials || rec.NoSpecial {
		t.Errorf("unexpected history record: %+v", rec)
	}
	if len(rec.BatchID) != 36 {
		t.Errorf("expected uuid batch id, got %q", rec.BatchID)
	}
}

func TestGenerate_AnonymousSkipsHistory(t *testing.T) {
	history := &fakeHistory{}
	svc := newTestGeneratorService(history, 1)

	if _, err := svc.Generate(context.Background(), 0, model.GenerateRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.records) != 0 {
		t.Errorf("expected no history for anonymous requests, got %d", len(history.records))
	}
}

func TestGenerate_HistoryFailureIsNotFatal(t *testing.T) {
	svc := newTestGeneratorService(&fakeHistory{err: errors.New("db down")}, 1)

	resp, err := svc.Generate(context.Background(), 7, model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 1 {
		t.Errorf("expected 1 password, got %d", len(resp.Passwords))
	}
}
