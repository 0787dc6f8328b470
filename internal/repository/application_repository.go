package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
)

type ApplicationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewApplicationRepository(db *pgxpool.Pool, logger *zap.Logger) *ApplicationRepository {
	return &ApplicationRepository{
		db:     db,
		logger: logger,
	}
}

var applicationColumns = []string{
	"id", "first_name", "last_name", "phone", "email", "birth_date",
	"gender", "address", "course_level", "dekont_path", "status",
	"created_at", "updated_at",
}

func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := squirrel.Insert("applications").
		Columns(applicationColumns...).
		Values(app.ID, app.FirstName, app.LastName, app.Phone, app.Email, app.BirthDate,
			app.Gender, app.Address, app.CourseLevel, app.DekontPath, app.Status,
			app.CreatedAt, app.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := squirrel.Select(applicationColumns...).
		From("applications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var app models.Application
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&app.ID, &app.FirstName, &app.LastName, &app.Phone, &app.Email, &app.BirthDate,
		&app.Gender, &app.Address, &app.CourseLevel, &app.DekontPath, &app.Status,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (r *ApplicationRepository) List(ctx context.Context, limit, offset int) ([]*models.Application, error) {
	query := squirrel.Select(applicationColumns...).
		From("applications").
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

	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(
			&app.ID, &app.FirstName, &app.LastName, &app.Phone, &app.Email, &app.BirthDate,
			&app.Gender, &app.Address, &app.CourseLevel, &app.DekontPath, &app.Status,
			&app.CreatedAt, &app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, &app)
	}

	return apps, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	query := squirrel.Update("applications").
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

func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("applications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
