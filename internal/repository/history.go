package repository

import (
	"context"
	"database/sql"

	"github.com/vaultpass/pwtool/internal/model"
)

// HistoryRepository persists generation batch metadata.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a generation record and sets its generated ID.
func (r *HistoryRepository) Create(ctx context.Context, rec *model.GenerationRecord) error {
	query := `INSERT INTO generation_history (batch_id, user_id, length, count, no_special, custom_specials)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		rec.BatchID, rec.UserID, rec.Length, rec.Count, rec.NoSpecial, rec.CustomSpecials,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	rec.ID = id
	return nil
}

// ListByUser returns the most recent generation records of a user, newest first.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.GenerationRecord, error) {
	query := `SELECT id, batch_id, user_id, length, count, no_special, custom_specials, created_at
		FROM generation_history WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.GenerationRecord
	for rows.Next() {
		var rec model.GenerationRecord
		if err := rows.Scan(
			&rec.ID, &rec.BatchID, &rec.UserID, &rec.Length, &rec.Count,
			&rec.NoSpecial, &rec.CustomSpecials, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
