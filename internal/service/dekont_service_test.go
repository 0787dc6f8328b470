package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dekont"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
)

type fakeDekontStore struct {
	created []*models.DekontAnalysis
	byID    map[uuid.UUID]*models.DekontAnalysis
}

func newFakeDekontStore() *fakeDekontStore {
	return &fakeDekontStore{byID: make(map[uuid.UUID]*models.DekontAnalysis)}
}

func (f *fakeDekontStore) Create(_ context.Context, a *models.DekontAnalysis) error {
	f.created = append(f.created, a)
	f.byID[a.ID] = a
	return nil
}

func (f *fakeDekontStore) GetByID(_ context.Context, id uuid.UUID) (*models.DekontAnalysis, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, os.ErrNotExist
	}
	return a, nil
}

func (f *fakeDekontStore) List(context.Context, int, int) ([]*models.DekontAnalysis, error) {
	return f.created, nil
}

func (f *fakeDekontStore) ListByApplicationID(_ context.Context, applicationID uuid.UUID) ([]*models.DekontAnalysis, error) {
	var out []*models.DekontAnalysis
	for _, a := range f.created {
		if a.ApplicationID != nil && *a.ApplicationID == applicationID {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubExtractor struct {
	text string
}

func (s *stubExtractor) ExtractText(context.Context, string) (string, error) {
	return s.text, nil
}

func tempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dekont.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestDekontService_AnalyzeAndStore(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	text := "Gönderen: Ahmet Yılmaz\nTutar: 1.000,00 TL\nGaranti\n05/07/2025 14:30"
	analyzer := dekont.NewAnalyzer(&stubExtractor{text: text}, dekont.NewAIExtractor(nil, time.Second, logger), logger)

	store := newFakeDekontStore()
	svc := NewDekontService(analyzer, store, logger)

	appID := uuid.New()
	analysis, err := svc.AnalyzeAndStore(ctx, models.SourceWeb, &appID, tempPDF(t))
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, models.SourceWeb, analysis.Source)
	require.NotNil(t, analysis.ApplicationID)
	assert.Equal(t, appID, *analysis.ApplicationID)
	require.NotNil(t, analysis.SenderName)
	assert.Equal(t, "Ahmet Yılmaz", *analysis.SenderName)
	require.NotNil(t, analysis.Amount)
	assert.InDelta(t, 1000.0, *analysis.Amount, 0.001)
	require.NotNil(t, analysis.TransactionDate)
	assert.Equal(t, "2025-07-05", analysis.TransactionDate.Format("2006-01-02"))
	require.NotNil(t, analysis.TransactionTime)
	assert.Equal(t, "14:30:00", *analysis.TransactionTime)
	assert.False(t, analysis.AIUsed)
	assert.Equal(t, dekont.PatternConfidence, analysis.ConfidenceScore)

	listed, err := svc.ListByApplicationID(ctx, appID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestDekontService_AnalyzeAndStore_PipelineErrorsPassThrough(t *testing.T) {
	logger := zap.NewNop()
	analyzer := dekont.NewAnalyzer(&stubExtractor{text: ""}, dekont.NewAIExtractor(nil, time.Second, logger), logger)
	svc := NewDekontService(analyzer, newFakeDekontStore(), logger)

	_, err := svc.AnalyzeAndStore(context.Background(), models.SourceEmail, nil, tempPDF(t))
	assert.ErrorIs(t, err, dekont.ErrNoText)
}

func TestResultToModel_EmailWithoutApplication(t *testing.T) {
	r := &dekont.AnalysisResult{
		BankName:        "Ziraat",
		RawText:         "metin",
		ExtractionDate:  time.Now(),
		ConfidenceScore: dekont.PatternConfidence,
	}

	m := resultToModel(r, models.SourceEmail, nil, "/tmp/x.pdf")

	assert.Nil(t, m.ApplicationID)
	assert.Equal(t, models.SourceEmail, m.Source)
	assert.Nil(t, m.SenderName)
	require.NotNil(t, m.BankName)
	assert.Equal(t, "Ziraat", *m.BankName)
	assert.Nil(t, m.TransactionDate)
}
