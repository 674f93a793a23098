package service

import (
	"context"

	"github.com/vaultpass/pwtool/internal/model"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type historyLister interface {
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.GenerationRecord, error)
}

// HistoryService exposes a user's generation history.
type HistoryService struct {
	repo historyLister
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(repo historyLister) *HistoryService {
	return &HistoryService{repo: repo}
}

// List returns up to limit records, newest first. Out of range limits fall
// back to DefaultHistoryLimit or MaxHistoryLimit.
func (s *HistoryService) List(ctx context.Context, userID int64, limit int) ([]model.GenerationRecordResponse, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	records, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	return recordsToResponse(records), nil
}

// recordsToResponse converts records to their API form.
func recordsToResponse(records []model.GenerationRecord) []model.GenerationRecordResponse {
	result := make([]model.GenerationRecordResponse, len(records))
	for i, r := range records {
		result[i] = model.GenerationRecordResponse{
			BatchID:        r.BatchID,
			Length:         r.Length,
			Count:          r.Count,
			NoSpecial:      r.NoSpecial,
			CustomSpecials: r.CustomSpecials,
			CreatedAt:      r.CreatedAt,
		}
	}
	return result
}
