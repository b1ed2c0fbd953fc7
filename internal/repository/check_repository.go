package repository

import (
	"context"

	"formadoc/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CheckRepository persists one audit row per verdict for the back-office
// review queue.
type CheckRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCheckRepository(db *pgxpool.Pool, logger *zap.Logger) *CheckRepository {
	return &CheckRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CheckRepository) Save(ctx context.Context, rec *models.CheckRecord) error {
	query := squirrel.Insert("checks").
		Columns("id", "doc_type", "status", "reason", "confidence", "ocr_method", "text_length", "created_at").
		Values(rec.ID, rec.DocType, rec.Status, rec.Reason, rec.Confidence, rec.OCRMethod, rec.TextLength, rec.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListRecent returns the newest audit rows, optionally filtered by verdict
// status.
func (r *CheckRepository) ListRecent(ctx context.Context, status models.VerdictStatus, limit int) ([]*models.CheckRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := squirrel.Select("id", "doc_type", "status", "reason", "confidence", "ocr_method", "text_length", "created_at").
		From("checks").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		query = query.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.CheckRecord
	for rows.Next() {
		var rec models.CheckRecord
		if err := rows.Scan(
			&rec.ID, &rec.DocType, &rec.Status, &rec.Reason, &rec.Confidence, &rec.OCRMethod, &rec.TextLength, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
