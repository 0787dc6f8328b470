package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
)

type PaymentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPaymentRepository(db *pgxpool.Pool, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

var paymentColumns = []string{
	"id", "application_id", "amount", "payment_type", "payment_date",
	"description", "status", "created_at", "updated_at",
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	query := squirrel.Insert("payments").
		Columns(paymentColumns...).
		Values(p.ID, p.ApplicationID, p.Amount, p.PaymentType, p.PaymentDate,
			p.Description, p.Status, p.CreatedAt, p.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	query := squirrel.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Payment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.ApplicationID, &p.Amount, &p.PaymentType, &p.PaymentDate,
		&p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*models.Payment, error) {
	query := squirrel.Select(paymentColumns...).
		From("payments").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.ApplicationID, &p.Amount, &p.PaymentType, &p.PaymentDate,
			&p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}

	return payments, rows.Err()
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	query := squirrel.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
