package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
)

type AdminRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAdminRepository(db *pgxpool.Pool, logger *zap.Logger) *AdminRepository {
	return &AdminRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := squirrel.Insert("admins").
		Columns("id", "username", "password", "is_active", "created_at").
		Values(admin.ID, admin.Username, admin.Password, admin.IsActive, admin.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := squirrel.Select("id", "username", "password", "is_active", "created_at").
		From("admins").
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var admin models.Admin
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&admin.ID, &admin.Username, &admin.Password, &admin.IsActive, &admin.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}
