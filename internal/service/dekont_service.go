package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dekont"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/repository"
)

// DekontStore is the persistence surface the service needs; the pgx
// repository satisfies it in production.
type DekontStore interface {
	Create(ctx context.Context, analysis *models.DekontAnalysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DekontAnalysis, error)
	List(ctx context.Context, limit, offset int) ([]*models.DekontAnalysis, error)
	ListByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]*models.DekontAnalysis, error)
}

var _ DekontStore = (*repository.DekontRepository)(nil)

// DekontService runs the analysis pipeline and persists the outcome.
// Both the web intake and the mail poller go through it.
type DekontService struct {
	analyzer *dekont.Analyzer
	store    DekontStore
	logger   *zap.Logger
}

func NewDekontService(analyzer *dekont.Analyzer, store DekontStore, logger *zap.Logger) *DekontService {
	return &DekontService{
		analyzer: analyzer,
		store:    store,
		logger:   logger,
	}
}

// AnalyzeAndStore processes the PDF at pdfPath and writes one
// DekontAnalysis row. Pipeline sentinel errors pass through unchanged
// so callers can decide whether the file is worth retrying.
func (s *DekontService) AnalyzeAndStore(ctx context.Context, source models.DekontSource, applicationID *uuid.UUID, pdfPath string) (*models.DekontAnalysis, error) {
	result, err := s.analyzer.AnalyzeDekont(ctx, pdfPath)
	if err != nil {
		s.logger.Warn("dekont analysis failed",
			zap.String("path", pdfPath),
			zap.String("source", string(source)),
			zap.Error(err))
		return nil, err
	}

	analysis := resultToModel(result, source, applicationID, pdfPath)
	if err := s.store.Create(ctx, analysis); err != nil {
		s.logger.Error("failed to persist dekont analysis",
			zap.String("path", pdfPath),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("dekont analysis stored",
		zap.String("id", analysis.ID.String()),
		zap.String("source", string(source)),
		zap.Float64("confidence", analysis.ConfidenceScore))

	return analysis, nil
}

func (s *DekontService) GetByID(ctx context.Context, id uuid.UUID) (*models.DekontAnalysis, error) {
	return s.store.GetByID(ctx, id)
}

func (s *DekontService) List(ctx context.Context, limit, offset int) ([]*models.DekontAnalysis, error) {
	return s.store.List(ctx, limit, offset)
}

func (s *DekontService) ListByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]*models.DekontAnalysis, error) {
	return s.store.ListByApplicationID(ctx, applicationID)
}

func resultToModel(r *dekont.AnalysisResult, source models.DekontSource, applicationID *uuid.UUID, pdfPath string) *models.DekontAnalysis {
	analysis := &models.DekontAnalysis{
		ID:              uuid.New(),
		ApplicationID:   applicationID,
		Source:          source,
		PDFPath:         pdfPath,
		Amount:          r.Amount,
		RawText:         sanitizeUTF8(r.RawText),
		AIUsed:          r.AIUsed,
		ConfidenceScore: r.ConfidenceScore,
		ExtractionDate:  r.ExtractionDate,
		CreatedAt:       time.Now(),
	}

	if r.SenderName != "" {
		name := sanitizeUTF8(r.SenderName)
		analysis.SenderName = &name
	}
	if r.BankName != "" {
		bank := sanitizeUTF8(r.BankName)
		analysis.BankName = &bank
	}
	if r.TransactionDate != "" {
		if t, err := time.Parse("2006-01-02", r.TransactionDate); err == nil {
			analysis.TransactionDate = &t
		}
	}
	if r.TransactionTime != "" {
		clock := r.TransactionTime
		analysis.TransactionTime = &clock
	}

	return analysis
}
