package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/store"
	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/vstore"
	"github.com/NikhilAnand12/BOT-GPT/pkg/llm"
	dbopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/db"
)

// fakeEmbedder 返回固定维度的确定性向量。
type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (f *fakeEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (f *fakeEmbedder) Name() string { return "fake-embedder" }

// fakeChat 返回固定回复并记录收到的消息。
type fakeChat struct {
	reply    string
	err      error
	messages []llm.Message
}

func (f *fakeChat) Chat(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeChat) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	return f.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: prompt},
	})
}

func (f *fakeChat) Name() string { return "fake-chat" }

// fakeVectorStore 返回预设命中并记录写入和删除。
type fakeVectorStore struct {
	hits      []*vstore.Hit
	searchErr error
	upserted  []*vstore.ChunkRecord
	deleted   []string
	rows      int64
}

func (f *fakeVectorStore) EnsureCollection(context.Context, int) error { return nil }

func (f *fakeVectorStore) Upsert(_ context.Context, chunks []*vstore.ChunkRecord) error {
	f.upserted = append(f.upserted, chunks...)
	return nil
}

func (f *fakeVectorStore) Search(_ context.Context, _ []float32, topK int, _ []string) ([]*vstore.Hit, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.hits) > topK {
		return f.hits[:topK], nil
	}
	return f.hits, nil
}

func (f *fakeVectorStore) DeleteByDocument(_ context.Context, documentID string) (int, error) {
	f.deleted = append(f.deleted, documentID)
	return len(f.upserted), nil
}

func (f *fakeVectorStore) Stats(context.Context) (int64, error) { return f.rows, nil }

func (f *fakeVectorStore) Close(context.Context) error { return nil }

func newTestFactory(t *testing.T) store.Factory {
	t.Helper()

	opts := dbopts.NewOptions()
	opts.DSN = ":memory:"
	// 内存库按连接隔离，必须固定单连接
	opts.MaxIdleConns = 1
	opts.MaxOpenConns = 1

	db, err := store.NewDB(opts)
	require.NoError(t, err)

	factory, err := store.NewFactory(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = factory.Close() })

	return factory
}

func hitWithDistance(i int, distance float64) *vstore.Hit {
	return &vstore.Hit{
		ID:            fmt.Sprintf("doc-1_chunk_%d", i),
		DocumentID:    "doc-1",
		DocumentTitle: "manual.pdf",
		ChunkIndex:    i,
		Content:       fmt.Sprintf("chunk %d", i),
		Distance:      distance,
	}
}
