package lattice

import (
	"sync"

	"gonum.org/v1/gonum/stat/combin"
)

// PartitionTable memoizes weak integer compositions: all ways to write a
// photon total as an ordered sum over a fixed number of modes. The compact
// sweep asks for the same (modes, total) pairs across layers and across
// invocations, so callers are expected to hold on to one table and share it.
//
// A PartitionTable is safe for concurrent use.
type PartitionTable struct {
	mu    sync.Mutex
	cache map[partitionKey][][]int
}

type partitionKey struct {
	modes int
	total int
}

// NewPartitionTable returns an empty table.
func NewPartitionTable() *PartitionTable {
	return &PartitionTable{cache: make(map[partitionKey][][]int)}
}

// Count returns the number of compositions of total over modes slots
// without enumerating them.
func (p *PartitionTable) Count(modes, total int) int {
	if modes <= 0 || total < 0 {
		return 0
	}
	return combin.Binomial(total+modes-1, modes-1)
}

// Get returns every length-modes slice of non-negative ints summing to
// total. The returned slices are shared: callers must not mutate them.
func (p *PartitionTable) Get(modes, total int) [][]int {
	key := partitionKey{modes, total}
	p.mu.Lock()
	parts, ok := p.cache[key]
	p.mu.Unlock()
	if ok {
		return parts
	}

	parts = make([][]int, 0, p.Count(modes, total))
	if modes == 1 {
		parts = append(parts, []int{total})
	} else {
		for first := 0; first <= total; first++ {
			for _, rest := range p.Get(modes-1, total-first) {
				comp := make([]int, modes)
				comp[0] = first
				copy(comp[1:], rest)
				parts = append(parts, comp)
			}
		}
	}

	p.mu.Lock()
	if prior, ok := p.cache[key]; ok {
		parts = prior
	} else {
		p.cache[key] = parts
	}
	p.mu.Unlock()
	return parts
}
