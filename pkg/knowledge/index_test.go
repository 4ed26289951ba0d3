package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/embedding"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (c *countingEmbedder) Generate(_ context.Context, _ string, _ string) (*embedding.EmbeddingResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 2}},
	}, nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kb.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithHeader(t *testing.T) {
	path := writeCSV(t, "question,answer\nq1,a1\nq2,a2\n")
	embedder := &countingEmbedder{}

	index := Load(context.Background(), path, embedder, logger.NewNopLogger())

	require.True(t, index.Available())
	assert.Equal(t, 2, index.Len())
	assert.Equal(t, 2, embedder.calls)
	assert.Equal(t, "q1", index.Entries()[0].Question)
	assert.Equal(t, "a1", index.Entries()[0].Answer)
	assert.Equal(t, []float32{1, 2}, index.Entries()[0].Embedding)
}

func TestLoadWithoutHeader(t *testing.T) {
	path := writeCSV(t, "q1,a1\nq2,a2\n")

	index := Load(context.Background(), path, &countingEmbedder{}, logger.NewNopLogger())

	require.True(t, index.Available())
	assert.Equal(t, 2, index.Len())
}

func TestLoadDropsIncompleteRows(t *testing.T) {
	path := writeCSV(t, "question,answer\nq1,a1\n,missing-question\nmissing-answer,\nq2,a2\n")

	index := Load(context.Background(), path, &countingEmbedder{}, logger.NewNopLogger())

	require.True(t, index.Available())
	assert.Equal(t, 2, index.Len())
}

func TestLoadFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		index := Load(context.Background(), "nonexistent.csv", &countingEmbedder{}, logger.NewNopLogger())
		assert.False(t, index.Available())
		assert.Equal(t, 0, index.Len())
	})

	t.Run("nil provider", func(t *testing.T) {
		path := writeCSV(t, "question,answer\nq1,a1\n")
		index := Load(context.Background(), path, nil, logger.NewNopLogger())
		assert.False(t, index.Available())
	})

	t.Run("embedding error", func(t *testing.T) {
		path := writeCSV(t, "question,answer\nq1,a1\n")
		index := Load(context.Background(), path, &countingEmbedder{err: errors.New("quota")}, logger.NewNopLogger())
		assert.False(t, index.Available())
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeCSV(t, "")
		index := Load(context.Background(), path, &countingEmbedder{}, logger.NewNopLogger())
		assert.False(t, index.Available())
	})
}

func TestNewIndexEmptyIsUnavailable(t *testing.T) {
	assert.False(t, NewIndex(nil).Available())
	assert.False(t, Unavailable().Available())
}
