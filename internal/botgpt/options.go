// Package botgpt provides the BOT-GPT backend application.
package botgpt

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	dbopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/db"
	httpopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/http"
	llmopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/llm"
	logopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/logger"
	milvusopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/milvus"
	ragopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/rag"
	redisopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/redis"
	uploadopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/upload"
)

// Options contains all BOT-GPT service options.
type Options struct {
	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// Log contains logger configuration.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// DB contains relational database configuration.
	DB *dbopts.Options `json:"db" mapstructure:"db"`

	// Milvus contains Milvus client configuration.
	Milvus *milvusopts.Options `json:"milvus" mapstructure:"milvus"`

	// Embedding contains embedding provider configuration.
	Embedding *llmopts.ProviderOptions `json:"embedding" mapstructure:"embedding"`

	// Chat contains chat provider configuration.
	Chat *llmopts.ProviderOptions `json:"chat" mapstructure:"chat"`

	// RAG contains retrieval and context window configuration.
	RAG *ragopts.Options `json:"rag" mapstructure:"rag"`

	// Upload contains file upload configuration.
	Upload *uploadopts.Options `json:"upload" mapstructure:"upload"`

	// Cache contains the embedding cache configuration.
	Cache *CacheOptions `json:"cache" mapstructure:"cache"`

	// IngestWorkers 文档索引时并发向量化的工作协程数。
	IngestWorkers int `json:"ingest-workers" mapstructure:"ingest-workers"`
}

// CacheOptions 向量嵌入缓存配置。
type CacheOptions struct {
	// Enabled 是否启用缓存。
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TTL 缓存过期时间。
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`

	// KeyPrefix 缓存键前缀。
	KeyPrefix string `json:"key-prefix" mapstructure:"key-prefix"`

	// Redis Redis 连接配置。
	Redis *redisopts.Options `json:"redis" mapstructure:"redis"`
}

// NewCacheOptions 创建默认缓存配置。
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Enabled:   false,
		TTL:       24 * time.Hour,
		KeyPrefix: "emb:",
		Redis:     redisopts.NewOptions(),
	}
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTP:          httpopts.NewOptions(),
		Log:           logopts.NewOptions(),
		DB:            dbopts.NewOptions(),
		Milvus:        milvusopts.NewOptions(),
		Embedding:     llmopts.NewEmbeddingOptions(),
		Chat:          llmopts.NewChatOptions(),
		RAG:           ragopts.NewOptions(),
		Upload:        uploadopts.NewOptions(),
		Cache:         NewCacheOptions(),
		IngestWorkers: 4,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.DB.AddFlags(fs)
	o.Milvus.AddFlags(fs)
	o.Embedding.AddFlags(fs, "embedding")
	o.Chat.AddFlags(fs, "chat")
	o.RAG.AddFlags(fs)
	o.Upload.AddFlags(fs)
	o.addCacheFlags(fs)
	fs.IntVar(&o.IngestWorkers, "ingest-workers", o.IngestWorkers, "Number of concurrent embedding workers during ingestion.")
}

func (o *Options) addCacheFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Cache.Enabled, "cache.enabled", o.Cache.Enabled, "Enable the embedding cache")
	fs.DurationVar(&o.Cache.TTL, "cache.ttl", o.Cache.TTL, "Embedding cache TTL")
	fs.StringVar(&o.Cache.KeyPrefix, "cache.key-prefix", o.Cache.KeyPrefix, "Embedding cache key prefix")
	o.Cache.Redis.AddFlags(fs)
}

// Validate validates the options.
func (o *Options) Validate() error {
	if err := o.HTTP.Validate(); err != nil {
		return err
	}
	if err := o.Log.Validate(); err != nil {
		return err
	}
	for _, errs := range [][]error{
		o.DB.Validate(),
		o.Milvus.Validate(),
		o.Embedding.Validate(),
		o.Chat.Validate(),
		o.RAG.Validate(),
		o.Upload.Validate(),
	} {
		for _, err := range errs {
			return err
		}
	}
	if o.Cache.Enabled {
		if err := o.Cache.Redis.Validate(); err != nil {
			return err
		}
	}
	if o.IngestWorkers <= 0 {
		return fmt.Errorf("ingest-workers must be positive")
	}
	return nil
}

// Complete completes the options with defaults.
func (o *Options) Complete() error {
	if o.Cache == nil {
		o.Cache = NewCacheOptions()
	}
	return nil
}
