package dekont

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPDFExtractor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewPDFExtractor(zap.NewNop())
	_, err := e.ExtractText(ctx, "whatever.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDFExtractor_UnreadableFileYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	e := NewPDFExtractor(zap.NewNop())
	text, err := e.ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, text)
}
