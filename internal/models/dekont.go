package models

import (
	"time"

	"github.com/google/uuid"
)

// DekontSource records where the receipt entered the system.
type DekontSource string

const (
	SourceWeb   DekontSource = "web"
	SourceEmail DekontSource = "email"
)

// DekontAnalysis is one persisted analysis run. ApplicationID is nil
// for receipts that arrived by mail and could not be tied to an
// application.
type DekontAnalysis struct {
	ID              uuid.UUID    `db:"id"`
	ApplicationID   *uuid.UUID   `db:"application_id"`
	Source          DekontSource `db:"source"`
	PDFPath         string       `db:"pdf_path"`
	SenderName      *string      `db:"sender_name"`
	Amount          *float64     `db:"amount"`
	BankName        *string      `db:"bank_name"`
	TransactionDate *time.Time   `db:"transaction_date"`
	TransactionTime *string      `db:"transaction_time"`
	RawText         string       `db:"raw_text"`
	AIUsed          bool         `db:"ai_used"`
	ConfidenceScore float64      `db:"confidence_score"`
	ExtractionDate  time.Time    `db:"extraction_date"`
	CreatedAt       time.Time    `db:"created_at"`
}
