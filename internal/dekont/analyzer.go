package dekont

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
)

// Analyzer runs the full receipt pipeline: text extraction, the AI and
// pattern stages, and reconciliation. It is safe for concurrent use.
type Analyzer struct {
	extractor TextExtractor
	ai        *AIExtractor
	patterns  *PatternExtractor
	logger    *zap.Logger
	now       func() time.Time
}

func NewAnalyzer(extractor TextExtractor, ai *AIExtractor, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		extractor: extractor,
		ai:        ai,
		patterns:  NewPatternExtractor(),
		logger:    logger,
		now:       time.Now,
	}
}

// AnalyzeDekont processes a single PDF on disk. The returned error is
// one of the package sentinels for expected failures; the result is
// non-nil only on success.
func (a *Analyzer) AnalyzeDekont(ctx context.Context, pdfPath string) (*AnalysisResult, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		a.logger.Warn("dekont file not found", zap.String("path", pdfPath))
		return nil, ErrFileMissing
	}

	text, err := a.extractor.ExtractText(ctx, pdfPath)
	if err != nil || text == "" {
		a.logger.Warn("dekont yielded no text",
			zap.String("path", pdfPath),
			zap.Error(err))
		return nil, ErrNoText
	}

	aiCand, aiStage := a.ai.Analyze(ctx, text)
	patternCand, patternStage := a.patterns.Extract(text)

	result := Reconcile(aiCand, patternCand, aiStage, patternStage, text, a.now())
	if !result.HasFields() {
		a.logger.Warn("no fields extracted from dekont",
			zap.String("path", pdfPath),
			zap.String("ai_stage", string(aiStage.Status)),
			zap.String("pattern_stage", string(patternStage.Status)))
		return nil, ErrNoFields
	}

	a.logger.Info("dekont analyzed",
		zap.String("path", pdfPath),
		zap.Bool("ai_used", result.AIUsed),
		zap.Float64("confidence", result.ConfidenceScore))

	return result, nil
}
