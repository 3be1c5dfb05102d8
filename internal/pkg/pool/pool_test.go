package pool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRun(t *testing.T) {
	p, err := New(&Config{Capacity: 2})
	require.NoError(t, err)
	defer p.Release()

	var counter atomic.Int64
	tasks := make([]func(), 10)
	for i := range tasks {
		tasks[i] = func() {
			counter.Add(1)
		}
	}

	p.Run(tasks)

	// Run 返回时所有任务都已完成
	assert.Equal(t, int64(10), counter.Load())
}

func TestPoolDefaultConfig(t *testing.T) {
	p, err := New(nil)
	require.NoError(t, err)
	defer p.Release()

	done := make(chan struct{})
	err = p.Submit(func() { close(done) })
	require.NoError(t, err)
	<-done
}
