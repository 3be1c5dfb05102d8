// Package rag provides retrieval and context configuration options.
package rag

import (
	"fmt"

	"github.com/NikhilAnand12/BOT-GPT/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Options contains retrieval and context window configuration.
type Options struct {
	// ChunkSize 切块大小（Unicode 字符数）。
	ChunkSize int `json:"chunk-size" mapstructure:"chunk-size"`

	// ChunkOverlap 相邻块之间的重叠大小。
	ChunkOverlap int `json:"chunk-overlap" mapstructure:"chunk-overlap"`

	// TopK 相似度搜索返回的候选数量。
	TopK int `json:"top-k" mapstructure:"top-k"`

	// SimilarityThreshold 相似度阈值，低于该值的候选被丢弃。
	SimilarityThreshold float64 `json:"similarity-threshold" mapstructure:"similarity-threshold"`

	// MaxContextTokens 上下文窗口的 token 预算。
	MaxContextTokens int `json:"max-context-tokens" mapstructure:"max-context-tokens"`

	// Collection Milvus 集合名称。
	Collection string `json:"collection" mapstructure:"collection"`

	// EmbeddingDim 嵌入向量维度。
	EmbeddingDim int `json:"embedding-dim" mapstructure:"embedding-dim"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		ChunkSize:           2000,
		ChunkOverlap:        200,
		TopK:                5,
		SimilarityThreshold: 0.7,
		MaxContextTokens:    8000,
		Collection:          "botgpt_chunks",
		EmbeddingDim:        768, // nomic-embed-text dimension
	}
}

// AddFlags adds flags for retrieval options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.IntVar(&o.ChunkSize, options.Join(prefixes...)+"rag.chunk-size", o.ChunkSize, "Size of text chunks in characters.")
	fs.IntVar(&o.ChunkOverlap, options.Join(prefixes...)+"rag.chunk-overlap", o.ChunkOverlap, "Overlap between adjacent chunks.")
	fs.IntVar(&o.TopK, options.Join(prefixes...)+"rag.top-k", o.TopK, "Number of candidates from similarity search.")
	fs.Float64Var(&o.SimilarityThreshold, options.Join(prefixes...)+"rag.similarity-threshold", o.SimilarityThreshold, "Minimum similarity for a chunk to be used.")
	fs.IntVar(&o.MaxContextTokens, options.Join(prefixes...)+"rag.max-context-tokens", o.MaxContextTokens, "Token budget for the conversation context window.")
	fs.StringVar(&o.Collection, options.Join(prefixes...)+"rag.collection", o.Collection, "Milvus collection name.")
	fs.IntVar(&o.EmbeddingDim, options.Join(prefixes...)+"rag.embedding-dim", o.EmbeddingDim, "Embedding vector dimension.")
}

// Validate validates the retrieval options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk-size must be positive"))
	}
	if o.ChunkOverlap < 0 || o.ChunkOverlap >= o.ChunkSize {
		errs = append(errs, fmt.Errorf("chunk-overlap must be in [0, chunk-size)"))
	}
	if o.TopK <= 0 {
		errs = append(errs, fmt.Errorf("top-k must be positive"))
	}
	if o.SimilarityThreshold < 0 || o.SimilarityThreshold > 1 {
		errs = append(errs, fmt.Errorf("similarity-threshold must be in [0, 1]"))
	}
	if o.MaxContextTokens <= 0 {
		errs = append(errs, fmt.Errorf("max-context-tokens must be positive"))
	}
	if o.EmbeddingDim <= 0 {
		errs = append(errs, fmt.Errorf("embedding-dim must be positive"))
	}
	return errs
}
