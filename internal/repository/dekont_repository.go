package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
)

type DekontRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDekontRepository(db *pgxpool.Pool, logger *zap.Logger) *DekontRepository {
	return &DekontRepository{
		db:     db,
		logger: logger,
	}
}

var dekontColumns = []string{
	"id", "application_id", "source", "pdf_path", "sender_name", "amount",
	"bank_name", "transaction_date", "transaction_time", "raw_text",
	"ai_used", "confidence_score", "extraction_date", "created_at",
}

func (r *DekontRepository) Create(ctx context.Context, analysis *models.DekontAnalysis) error {
	query := squirrel.Insert("dekont_analyses").
		Columns(dekontColumns...).
		Values(analysis.ID, analysis.ApplicationID, analysis.Source, analysis.PDFPath,
			analysis.SenderName, analysis.Amount, analysis.BankName,
			analysis.TransactionDate, analysis.TransactionTime, analysis.RawText,
			analysis.AIUsed, analysis.ConfidenceScore, analysis.ExtractionDate,
			analysis.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DekontRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DekontAnalysis, error) {
	query := squirrel.Select(dekontColumns...).
		From("dekont_analyses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var a models.DekontAnalysis
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.ApplicationID, &a.Source, &a.PDFPath, &a.SenderName, &a.Amount,
		&a.BankName, &a.TransactionDate, &a.TransactionTime, &a.RawText,
		&a.AIUsed, &a.ConfidenceScore, &a.ExtractionDate, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *DekontRepository) List(ctx context.Context, limit, offset int) ([]*models.DekontAnalysis, error) {
	query := squirrel.Select(dekontColumns...).
		From("dekont_analyses").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryMany(ctx, query)
}

func (r *DekontRepository) ListByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]*models.DekontAnalysis, error) {
	query := squirrel.Select(dekontColumns...).
		From("dekont_analyses").
		Where(squirrel.Eq{"application_id": applicationID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryMany(ctx, query)
}

func (r *DekontRepository) queryMany(ctx context.Context, query squirrel.SelectBuilder) ([]*models.DekontAnalysis, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*models.DekontAnalysis
	for rows.Next() {
		var a models.DekontAnalysis
		if err := rows.Scan(
			&a.ID, &a.ApplicationID, &a.Source, &a.PDFPath, &a.SenderName, &a.Amount,
			&a.BankName, &a.TransactionDate, &a.TransactionTime, &a.RawText,
			&a.AIUsed, &a.ConfidenceScore, &a.ExtractionDate, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		analyses = append(analyses, &a)
	}

	return analyses, rows.Err()
}
