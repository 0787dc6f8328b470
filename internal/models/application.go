package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

type Application struct {
	ID          uuid.UUID         `db:"id"`
	FirstName   string            `db:"first_name"`
	LastName    string            `db:"last_name"`
	Phone       string            `db:"phone"`
	Email       string            `db:"email"`
	BirthDate   *time.Time        `db:"birth_date"`
	Gender      string            `db:"gender"`
	Address     string            `db:"address"`
	CourseLevel string            `db:"course_level"`
	DekontPath  *string           `db:"dekont_path"`
	Status      ApplicationStatus `db:"status"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}
