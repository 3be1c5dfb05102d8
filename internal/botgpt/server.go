package botgpt

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/biz"
	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/handler"
	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/router"
	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/store"
	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/vstore"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/pool"
	"github.com/NikhilAnand12/BOT-GPT/pkg/component/milvus"
	"github.com/NikhilAnand12/BOT-GPT/pkg/llm"
)

// Run runs the BOT-GPT service with the given options.
func Run(opts *Options) error {
	// 1. 初始化日志
	opts.Log.AddInitialField("service.name", appName)
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting BOT-GPT service...")

	// 2. 初始化关系库
	db, err := store.NewDB(opts.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	factory, err := store.NewFactory(db)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer factory.Close()
	logger.Infow("Database initialized", "driver", opts.DB.Driver)

	// 3. 初始化向量索引
	milvusClient, err := milvus.New(opts.Milvus)
	if err != nil {
		return fmt.Errorf("failed to initialize milvus: %w", err)
	}
	vectorStore := vstore.NewMilvusStore(milvusClient, opts.RAG.Collection)
	defer vectorStore.Close(context.Background())

	if err := vectorStore.EnsureCollection(context.Background(), opts.RAG.EmbeddingDim); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}
	logger.Infow("Milvus collection ready", "collection", opts.RAG.Collection, "dim", opts.RAG.EmbeddingDim)

	// 4. 初始化 LLM 供应商
	embedProvider, err := llm.NewEmbeddingProvider(opts.Embedding.Provider, opts.Embedding.ToConfigMap())
	if err != nil {
		return fmt.Errorf("failed to initialize embedding provider: %w", err)
	}
	chatProvider, err := llm.NewChatProvider(opts.Chat.Provider, opts.Chat.ToConfigMap())
	if err != nil {
		return fmt.Errorf("failed to initialize chat provider: %w", err)
	}
	logger.Infow("LLM providers initialized", "embedding", embedProvider.Name(), "chat", chatProvider.Name())

	// 5. 可选的 Embedding 缓存
	if opts.Cache.Enabled {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:         opts.Cache.Redis.Addr(),
			Password:     opts.Cache.Redis.Password,
			DB:           opts.Cache.Redis.Database,
			MaxRetries:   opts.Cache.Redis.MaxRetries,
			PoolSize:     opts.Cache.Redis.PoolSize,
			MinIdleConns: opts.Cache.Redis.MinIdleConns,
			DialTimeout:  opts.Cache.Redis.DialTimeout,
			ReadTimeout:  opts.Cache.Redis.ReadTimeout,
			WriteTimeout: opts.Cache.Redis.WriteTimeout,
			PoolTimeout:  opts.Cache.Redis.PoolTimeout,
		})
		defer redisClient.Close()

		embedProvider = llm.NewCachedEmbeddingProvider(embedProvider, redisClient, &llm.EmbeddingCacheConfig{
			Enabled:   true,
			TTL:       opts.Cache.TTL,
			KeyPrefix: opts.Cache.KeyPrefix,
		})
		logger.Info("Embedding cache enabled")
	}

	// 6. 初始化工作池
	workers, err := pool.New(&pool.Config{Capacity: opts.IngestWorkers})
	if err != nil {
		return fmt.Errorf("failed to initialize worker pool: %w", err)
	}
	defer workers.Release()

	// 7. 初始化 Biz 层
	composer := biz.NewComposer(opts.RAG.MaxContextTokens)
	retriever := biz.NewRetriever(vectorStore, embedProvider, &biz.RetrieverConfig{
		TopK:                opts.RAG.TopK,
		SimilarityThreshold: opts.RAG.SimilarityThreshold,
	})
	generator := biz.NewGenerator(chatProvider)
	turns := biz.NewTurnService(factory, composer, retriever, generator)
	ingestor := biz.NewIngestor(vectorStore, embedProvider, workers, &biz.IngestorConfig{
		ChunkSize:    opts.RAG.ChunkSize,
		ChunkOverlap: opts.RAG.ChunkOverlap,
	})

	userSvc := biz.NewUserService(factory)
	convSvc := biz.NewConversationService(factory, generator, turns)
	docSvc := biz.NewDocumentService(factory, ingestor, &biz.DocumentConfig{
		UploadDir:   opts.Upload.Dir,
		MaxFileSize: opts.Upload.MaxSize,
	})
	logger.Info("Business layer initialized")

	// 8. 初始化 HTTP 服务器
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = opts.Upload.MaxSize

	router.Register(engine, &router.Handlers{
		User:         handler.NewUserHandler(userSvc),
		Conversation: handler.NewConversationHandler(convSvc, turns),
		Document:     handler.NewDocumentHandler(docSvc),
		Health:       handler.NewHealthHandler(vectorStore),
	})

	srv := &http.Server{
		Addr:         opts.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  opts.HTTP.ReadTimeout,
		WriteTimeout: opts.HTTP.WriteTimeout,
		IdleTimeout:  opts.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", opts.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 9. 等待退出信号并优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case sig := <-quit:
		logger.Infow("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("BOT-GPT service stopped")
	return nil
}
