package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/vstore"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
)

func TestRetrieverThresholdFiltering(t *testing.T) {
	vs := &fakeVectorStore{hits: []*vstore.Hit{
		hitWithDistance(0, 0.1),
		hitWithDistance(1, 0.5),
		hitWithDistance(2, 0.9),
	}}
	retriever := NewRetriever(vs, &fakeEmbedder{}, &RetrieverConfig{
		TopK:                5,
		SimilarityThreshold: 0.7,
	})

	chunks, err := retriever.Retrieve(context.Background(), "query", []string{"doc-1"})
	require.NoError(t, err)

	require.Len(t, chunks, 1, "只有相似度 0.9 的块通过 0.7 阈值")
	assert.Equal(t, 1, chunks[0].Rank)
	assert.InDelta(t, 0.9, chunks[0].Similarity, 1e-9)
	assert.Equal(t, "doc-1", chunks[0].DocumentID)
}

func TestRetrieverRanking(t *testing.T) {
	vs := &fakeVectorStore{hits: []*vstore.Hit{
		hitWithDistance(0, 0.25),
		hitWithDistance(1, 0.05),
		hitWithDistance(2, 0.15),
	}}
	retriever := NewRetriever(vs, &fakeEmbedder{}, &RetrieverConfig{
		TopK:                5,
		SimilarityThreshold: 0.7,
	})

	chunks, err := retriever.Retrieve(context.Background(), "query", nil)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	// 按相似度降序，rank 从 1 开始
	assert.Equal(t, []int{1, 2, 3}, []int{chunks[0].Rank, chunks[1].Rank, chunks[2].Rank})
	assert.InDelta(t, 0.95, chunks[0].Similarity, 1e-9)
	assert.InDelta(t, 0.85, chunks[1].Similarity, 1e-9)
	assert.InDelta(t, 0.75, chunks[2].Similarity, 1e-9)
}

func TestRetrieverNoHits(t *testing.T) {
	retriever := NewRetriever(&fakeVectorStore{}, &fakeEmbedder{}, &RetrieverConfig{
		TopK:                5,
		SimilarityThreshold: 0.7,
	})

	chunks, err := retriever.Retrieve(context.Background(), "query", nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRetrieverEmbeddingFailure(t *testing.T) {
	retriever := NewRetriever(&fakeVectorStore{}, &fakeEmbedder{err: assert.AnError}, &RetrieverConfig{
		TopK:                5,
		SimilarityThreshold: 0.7,
	})

	_, err := retriever.Retrieve(context.Background(), "query", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmbeddingFailed)
}
