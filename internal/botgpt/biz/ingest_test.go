package biz

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/pool"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
)

func newIngestor(t *testing.T, vs *fakeVectorStore, embedder *fakeEmbedder, chunkSize, overlap int) *Ingestor {
	t.Helper()
	workers, err := pool.New(&pool.Config{Capacity: 2})
	require.NoError(t, err)
	t.Cleanup(workers.Release)

	return NewIngestor(vs, embedder, workers, &IngestorConfig{
		ChunkSize:    chunkSize,
		ChunkOverlap: overlap,
	})
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestDocument(t *testing.T) {
	vs := &fakeVectorStore{}
	ingestor := newIngestor(t, vs, &fakeEmbedder{}, 100, 10)

	path := writeTempFile(t, "doc.txt", strings.Repeat("a", 250))
	doc := &model.Document{ID: "doc-1", Filename: "doc.txt", FilePath: path}

	count, err := ingestor.IngestDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, len(vs.upserted), count)
	require.NotEmpty(t, vs.upserted)

	for i, record := range vs.upserted {
		assert.Equal(t, "doc-1_chunk_"+strconv.Itoa(i), record.ID)
		assert.Equal(t, "doc-1", record.DocumentID)
		assert.Equal(t, "doc.txt", record.DocumentTitle)
		assert.Equal(t, i, record.ChunkIndex)
		assert.NotEmpty(t, record.Embedding)
		assert.NotEmpty(t, record.CreatedAt)
	}
}

func TestIngestDocumentSmallFileSingleChunk(t *testing.T) {
	vs := &fakeVectorStore{}
	ingestor := newIngestor(t, vs, &fakeEmbedder{}, 2000, 200)

	path := writeTempFile(t, "small.txt", "short document body")
	doc := &model.Document{ID: "doc-1", Filename: "small.txt", FilePath: path}

	count, err := ingestor.IngestDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "doc-1_chunk_0", vs.upserted[0].ID)
}

func TestIngestDocumentEmptyExtraction(t *testing.T) {
	ingestor := newIngestor(t, &fakeVectorStore{}, &fakeEmbedder{}, 2000, 200)

	path := writeTempFile(t, "empty.txt", "   \n\t  ")
	doc := &model.Document{ID: "doc-1", Filename: "empty.txt", FilePath: path}

	_, err := ingestor.IngestDocument(context.Background(), doc)
	assert.ErrorIs(t, err, errors.ErrExtractionFailed)
}

func TestIngestDocumentEmbeddingFailure(t *testing.T) {
	ingestor := newIngestor(t, &fakeVectorStore{}, &fakeEmbedder{err: assert.AnError}, 2000, 200)

	path := writeTempFile(t, "doc.txt", "some content to embed")
	doc := &model.Document{ID: "doc-1", Filename: "doc.txt", FilePath: path}

	_, err := ingestor.IngestDocument(context.Background(), doc)
	assert.ErrorIs(t, err, errors.ErrEmbeddingFailed)
}

func TestIngestDocumentManyBatches(t *testing.T) {
	vs := &fakeVectorStore{}
	embedder := &fakeEmbedder{}
	ingestor := newIngestor(t, vs, embedder, 10, 0)

	// 400 字符、块大小 10 => 40 块，跨多个批次
	path := writeTempFile(t, "big.txt", strings.Repeat("x", 400))
	doc := &model.Document{ID: "doc-1", Filename: "big.txt", FilePath: path}

	count, err := ingestor.IngestDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 40, count)
	assert.Greater(t, embedder.calls, 1)

	// 顺序与输入一致
	for i, record := range vs.upserted {
		assert.Equal(t, i, record.ChunkIndex)
	}
}

func TestDeleteDocumentChunks(t *testing.T) {
	vs := &fakeVectorStore{}
	ingestor := newIngestor(t, vs, &fakeEmbedder{}, 2000, 200)

	_, err := ingestor.DeleteDocumentChunks(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"doc-1"}, vs.deleted)
}
