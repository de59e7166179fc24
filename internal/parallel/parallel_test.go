package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForSequentialFallback(t *testing.T) {
	cfg := Config{Enabled: false}
	var order []int
	For(10, func(i int) { order = append(order, i) }, cfg)

	assert.Len(t, order, 10)
	for i, v := range order {
		assert.Equal(t, i, v, "disabled config must run in order")
	}
}

func TestForVisitsEveryIndex(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}
	const n = 1000

	var hits [n]int32
	For(n, func(i int) { atomic.AddInt32(&hits[i], 1) }, cfg)

	for i, h := range hits {
		assert.Equal(t, int32(1), h, "index %d", i)
	}
}

func TestForChunksCoverAndDisjoint(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 10}
	const n = 101

	var covered [n]int32
	ForChunks(n, func(start, end int) {
		assert.LessOrEqual(t, start, end)
		for i := start; i < end; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	}, cfg)

	for i, c := range covered {
		assert.Equal(t, int32(1), c, "index %d covered exactly once", i)
	}
}

func TestForSmallInputStaysSequential(t *testing.T) {
	cfg := DefaultConfig()
	var sum int
	// Below MinChunkSize: runs on the caller goroutine, no atomics needed.
	For(100, func(i int) { sum += i }, cfg)
	assert.Equal(t, 4950, sum)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Positive(t, cfg.NumWorkers)
	assert.Positive(t, cfg.MinChunkSize)
}
