package dekont

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTextExtractor struct {
	text string
	err  error
}

func (f *fakeTextExtractor) ExtractText(context.Context, string) (string, error) {
	return f.text, f.err
}

func writeTempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dekont.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))
	return path
}

func TestAnalyzer_AnalyzeDekont(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		a := NewAnalyzer(&fakeTextExtractor{}, NewAIExtractor(nil, time.Second, logger), logger)
		_, err := a.AnalyzeDekont(ctx, "/nonexistent/dekont.pdf")
		assert.ErrorIs(t, err, ErrFileMissing)
	})

	t.Run("no text extracted", func(t *testing.T) {
		a := NewAnalyzer(&fakeTextExtractor{text: ""}, NewAIExtractor(nil, time.Second, logger), logger)
		_, err := a.AnalyzeDekont(ctx, writeTempPDF(t))
		assert.ErrorIs(t, err, ErrNoText)
	})

	t.Run("no fields extracted", func(t *testing.T) {
		a := NewAnalyzer(&fakeTextExtractor{text: "alakasız içerik"}, NewAIExtractor(nil, time.Second, logger), logger)
		_, err := a.AnalyzeDekont(ctx, writeTempPDF(t))
		assert.ErrorIs(t, err, ErrNoFields)
	})

	t.Run("pattern only analysis", func(t *testing.T) {
		extractor := &fakeTextExtractor{text: "Gönderen: Ahmet Yılmaz\nTutar: 1.000,00 TL\n05/07/2025 14:30"}
		a := NewAnalyzer(extractor, NewAIExtractor(nil, time.Second, logger), logger)

		result, err := a.AnalyzeDekont(ctx, writeTempPDF(t))
		require.NoError(t, err)

		assert.False(t, result.AIUsed)
		assert.Equal(t, PatternConfidence, result.ConfidenceScore)
		assert.Equal(t, "Ahmet Yılmaz", result.SenderName)
		require.NotNil(t, result.Amount)
		assert.InDelta(t, 1000.0, *result.Amount, 0.001)
		assert.Equal(t, "2025-07-05", result.TransactionDate)
		assert.Equal(t, "14:30:00", result.TransactionTime)
		assert.Equal(t, StageSkipped, result.AIStage.Status)
	})

	t.Run("ai analysis raises confidence", func(t *testing.T) {
		extractor := &fakeTextExtractor{text: "Gönderen: Ahmet Yılmaz\nTutar: 1.000,00 TL"}
		gen := &fakeGenerator{response: `{"sender_name": "Ahmet Yılmaz", "amount": 1000, "bank_name": "Garanti"}`}
		a := NewAnalyzer(extractor, NewAIExtractor(gen, time.Second, logger), logger)

		result, err := a.AnalyzeDekont(ctx, writeTempPDF(t))
		require.NoError(t, err)

		assert.True(t, result.AIUsed)
		assert.Equal(t, AIConfidence, result.ConfidenceScore)
		assert.Equal(t, "Garanti", result.BankName)
	})

	t.Run("ai failure falls back to patterns", func(t *testing.T) {
		extractor := &fakeTextExtractor{text: "Tutar: 500,00 TL"}
		gen := &fakeGenerator{response: "json değil"}
		a := NewAnalyzer(extractor, NewAIExtractor(gen, time.Second, logger), logger)

		result, err := a.AnalyzeDekont(ctx, writeTempPDF(t))
		require.NoError(t, err)

		assert.False(t, result.AIUsed)
		assert.Equal(t, PatternConfidence, result.ConfidenceScore)
		assert.Equal(t, StageMalformed, result.AIStage.Status)
		require.NotNil(t, result.Amount)
		assert.InDelta(t, 500.0, *result.Amount, 0.001)
	})

	t.Run("raw text retained", func(t *testing.T) {
		text := "Tutar: 500,00 TL\nGaranti"
		a := NewAnalyzer(&fakeTextExtractor{text: text}, NewAIExtractor(nil, time.Second, logger), logger)

		result, err := a.AnalyzeDekont(ctx, writeTempPDF(t))
		require.NoError(t, err)
		assert.Equal(t, text, result.RawText)
	})
}
