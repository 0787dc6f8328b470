package dekont

import "time"

// Reconcile merges the AI and pattern candidates into one result.
// Field precedence is AI first, pattern fills the gaps, with one
// exception: date and time travel together. If the AI produced either,
// both slots come from the AI candidate so the timestamp stays
// internally consistent.
func Reconcile(ai, pattern Candidate, aiStage, patternStage StageOutcome, rawText string, now time.Time) *AnalysisResult {
	aiUsed := !ai.IsEmpty()

	r := &AnalysisResult{
		SenderName: firstNonEmpty(ai.SenderName, pattern.SenderName),
		Amount:     firstAmount(ai.Amount, pattern.Amount),
		BankName:   firstNonEmpty(ai.BankName, pattern.BankName),

		RawText:        rawText,
		ExtractionDate: now,
		AIUsed:         aiUsed,

		AIStage:      aiStage,
		PatternStage: patternStage,
	}

	if ai.TransactionDate != "" || ai.TransactionTime != "" {
		r.TransactionDate = ai.TransactionDate
		r.TransactionTime = ai.TransactionTime
	} else {
		r.TransactionDate = pattern.TransactionDate
		r.TransactionTime = pattern.TransactionTime
	}

	if aiUsed {
		r.ConfidenceScore = AIConfidence
	} else {
		r.ConfidenceScore = PatternConfidence
	}

	return r
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstAmount(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}
