package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name string
}

func (f *fakeProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (f *fakeProvider) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (f *fakeProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	return "ok", nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	return "ok", nil
}

func (f *fakeProvider) Name() string { return f.name }

func TestRegisterAndNewProvider(t *testing.T) {
	RegisterProvider("fake", func(config map[string]any) (Provider, error) {
		return &fakeProvider{name: "fake"}, nil
	})

	p, err := NewProvider("fake", nil)
	require.NoError(t, err)
	assert.Equal(t, "fake", p.Name())

	ep, err := NewEmbeddingProvider("fake", nil)
	require.NoError(t, err)
	assert.Equal(t, "fake", ep.Name())

	cp, err := NewChatProvider("fake", nil)
	require.NoError(t, err)
	assert.Equal(t, "fake", cp.Name())
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider("no-such-provider", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestListProviders(t *testing.T) {
	RegisterProvider("fake-list", func(config map[string]any) (Provider, error) {
		return &fakeProvider{name: "fake-list"}, nil
	})

	assert.Contains(t, ListProviders(), "fake-list")
}
