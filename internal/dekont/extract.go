package dekont

import (
	"bytes"
	"context"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// TextExtractor produces plain text from a PDF on disk.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// PDFExtractor reads PDF text with go-fitz and falls back to a pure-Go
// reader when the MuPDF binding fails on a document. Extraction
// problems are absorbed: an unreadable or empty document yields an
// empty string, which the analyzer maps to ErrNoText.
type PDFExtractor struct {
	logger *zap.Logger
}

func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

func (e *PDFExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := extractWithFitz(path)
	if err != nil {
		e.logger.Warn("fitz extraction failed, trying fallback reader",
			zap.String("path", path),
			zap.Error(err))
		text, err = extractWithReader(path)
		if err != nil {
			e.logger.Error("all pdf extraction backends failed",
				zap.String("path", path),
				zap.Error(err))
			return "", nil
		}
	}

	return strings.TrimSpace(text), nil
}

func extractWithFitz(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}

func extractWithReader(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
