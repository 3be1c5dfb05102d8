// Package pool 提供基于 ants 的有界工作池，用于文档索引时并发向量化批次。
package pool

import (
	"sync"
	"time"

	"github.com/kart-io/logger"
	"github.com/panjf2000/ants/v2"
)

// Config defines the configuration for the worker pool.
type Config struct {
	// Capacity 池容量（最大并发 goroutine 数）
	Capacity int
	// ExpiryDuration goroutine 空闲过期时间
	ExpiryDuration time.Duration
}

// DefaultConfig 返回默认池配置。
func DefaultConfig() *Config {
	return &Config{
		Capacity:       4,
		ExpiryDuration: 30 * time.Second,
	}
}

// Pool represents a bounded worker pool.
type Pool struct {
	pool *ants.Pool
}

// New creates a worker pool with the given config.
func New(cfg *Config) (*Pool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	p, err := ants.NewPool(
		cfg.Capacity,
		ants.WithExpiryDuration(cfg.ExpiryDuration),
		ants.WithPanicHandler(func(v interface{}) {
			logger.Errorw("worker pool task panicked", "panic", v)
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Pool{pool: p}, nil
}

// Submit submits a task to the pool. Blocks while the pool is full.
func (p *Pool) Submit(task func()) error {
	return p.pool.Submit(task)
}

// Run executes all tasks on the pool and waits for them to finish.
// If a task cannot be submitted, it runs inline so no task is lost.
func (p *Pool) Run(tasks []func()) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		wg.Add(1)
		wrapped := func() {
			defer wg.Done()
			task()
		}
		if err := p.Submit(wrapped); err != nil {
			wrapped()
		}
	}
	wg.Wait()
}

// Running returns the number of currently running workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Release closes the pool and releases its workers.
func (p *Pool) Release() {
	p.pool.Release()
}
