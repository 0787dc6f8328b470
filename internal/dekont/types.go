package dekont

import (
	"errors"
	"time"
)

// Terminal pipeline failures. Callers log these and retry on a later
// cycle; they are never wrapped panics or low-level library errors.
var (
	ErrFileMissing = errors.New("dekont: pdf file does not exist")
	ErrNoText      = errors.New("dekont: no text could be extracted from pdf")
	ErrNoFields    = errors.New("dekont: no fields could be extracted")
)

// Confidence tiers. These encode provenance, not correctness: which
// extractor contributed to the reconciled record.
const (
	AIConfidence      = 0.9
	PatternConfidence = 0.7
)

// StageStatus describes how a single extraction stage ended.
type StageStatus string

const (
	StageOK        StageStatus = "ok"        // produced at least one field
	StageEmpty     StageStatus = "empty"     // ran, found nothing
	StageFailed    StageStatus = "failed"    // errored, absorbed
	StageMalformed StageStatus = "malformed" // AI replied, response unparseable
	StageSkipped   StageStatus = "skipped"   // AI disabled
)

// StageOutcome is the typed result of one stage. The orchestrator
// treats empty/failed/malformed the same (stage contributed nothing)
// but keeps them apart for logging and tests.
type StageOutcome struct {
	Status StageStatus
	Reason string
}

// Candidate is one producer's view of the receipt fields. Two exist
// per analysis: one from the AI extractor, one from the pattern
// library. Absent fields are the zero value (nil for Amount).
type Candidate struct {
	SenderName      string
	Amount          *float64
	BankName        string
	TransactionDate string // YYYY-MM-DD
	TransactionTime string // HH:MM:SS
}

func (c Candidate) IsEmpty() bool {
	return c.SenderName == "" &&
		c.Amount == nil &&
		c.BankName == "" &&
		c.TransactionDate == "" &&
		c.TransactionTime == ""
}

// AnalysisResult is the reconciled output of one analysis. It is
// built once and never mutated; the caller owns persistence.
type AnalysisResult struct {
	SenderName      string
	Amount          *float64
	BankName        string
	TransactionDate string // YYYY-MM-DD, empty if unknown
	TransactionTime string // HH:MM:SS, empty if unknown

	RawText         string    // full extracted text, retained for audit
	ExtractionDate  time.Time // wall-clock time of the analysis
	AIUsed          bool
	ConfidenceScore float64

	AIStage      StageOutcome
	PatternStage StageOutcome
}

func (r *AnalysisResult) HasFields() bool {
	return r.SenderName != "" ||
		r.Amount != nil ||
		r.BankName != "" ||
		r.TransactionDate != "" ||
		r.TransactionTime != ""
}
