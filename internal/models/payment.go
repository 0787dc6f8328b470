package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
)

type Payment struct {
	ID            uuid.UUID     `db:"id"`
	ApplicationID uuid.UUID     `db:"application_id"`
	Amount        float64       `db:"amount"`
	PaymentType   string        `db:"payment_type"`
	PaymentDate   *time.Time    `db:"payment_date"`
	Description   string        `db:"description"`
	Status        PaymentStatus `db:"status"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}
