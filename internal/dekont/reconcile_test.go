package dekont

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestReconcile(t *testing.T) {
	now := time.Date(2025, 7, 5, 12, 0, 0, 0, time.UTC)
	ok := StageOutcome{Status: StageOK}
	empty := StageOutcome{Status: StageEmpty}

	t.Run("ai wins field by field, pattern fills gaps", func(t *testing.T) {
		ai := Candidate{SenderName: "Ahmet Yılmaz", Amount: floatPtr(1000)}
		pattern := Candidate{SenderName: "ahmet", Amount: floatPtr(5), BankName: "Garanti"}

		r := Reconcile(ai, pattern, ok, ok, "metin", now)

		assert.Equal(t, "Ahmet Yılmaz", r.SenderName)
		require.NotNil(t, r.Amount)
		assert.InDelta(t, 1000.0, *r.Amount, 0.001)
		assert.Equal(t, "Garanti", r.BankName)
		assert.True(t, r.AIUsed)
		assert.Equal(t, AIConfidence, r.ConfidenceScore)
		assert.Equal(t, "metin", r.RawText)
		assert.Equal(t, now, r.ExtractionDate)
	})

	t.Run("ai date and time travel together", func(t *testing.T) {
		ai := Candidate{TransactionDate: "2025-07-05"}
		pattern := Candidate{TransactionDate: "2024-01-01", TransactionTime: "09:00:00"}

		r := Reconcile(ai, pattern, ok, ok, "", now)

		assert.Equal(t, "2025-07-05", r.TransactionDate)
		assert.Empty(t, r.TransactionTime, "pattern time must not mix with ai date")
	})

	t.Run("pattern date and time used when ai has neither", func(t *testing.T) {
		ai := Candidate{SenderName: "Ali Veli"}
		pattern := Candidate{TransactionDate: "2024-01-01", TransactionTime: "09:00:00"}

		r := Reconcile(ai, pattern, ok, ok, "", now)

		assert.Equal(t, "2024-01-01", r.TransactionDate)
		assert.Equal(t, "09:00:00", r.TransactionTime)
	})

	t.Run("pattern only drops confidence", func(t *testing.T) {
		pattern := Candidate{BankName: "Ziraat"}

		r := Reconcile(Candidate{}, pattern, empty, ok, "", now)

		assert.False(t, r.AIUsed)
		assert.Equal(t, PatternConfidence, r.ConfidenceScore)
		assert.Equal(t, "Ziraat", r.BankName)
	})

	t.Run("both empty has no fields", func(t *testing.T) {
		r := Reconcile(Candidate{}, Candidate{}, empty, empty, "metin", now)

		assert.False(t, r.HasFields())
		assert.False(t, r.AIUsed)
	})
}
