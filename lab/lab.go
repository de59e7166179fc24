package lab

import (
	"github.com/lattica-dev/lattica/internal/backend/cpu"
	"github.com/lattica-dev/lattica/internal/cvmath"
	"github.com/lattica-dev/lattica/internal/lattice"
	"github.com/lattica-dev/lattica/settings"
)

// Lab carries the conventions and shared caches every constructed object
// refers back to.
type Lab struct {
	cfg   settings.Settings
	be    cvmath.Backend
	parts *lattice.PartitionTable
}

// New builds a lab with the given settings on the CPU backend.
func New(cfg settings.Settings) *Lab {
	return &Lab{cfg: cfg, be: cpu.New(), parts: lattice.NewPartitionTable()}
}

// Default builds a lab with default settings.
func Default() *Lab { return New(settings.Default()) }

// Settings returns the lab's configuration.
func (l *Lab) Settings() settings.Settings { return l.cfg }

// Backend returns the complex linear-algebra backend in use.
func (l *Lab) Backend() cvmath.Backend { return l.be }

// Partitions returns the shared integer-partition cache.
func (l *Lab) Partitions() *lattice.PartitionTable { return l.parts }

// defaultModes fills in 0..n-1 when no explicit mode list is given.
func defaultModes(modes []int, n int) []int {
	if modes != nil {
		return modes
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// paramLen returns the mode count implied by scalar-or-per-mode parameter
// slices together with an optional explicit mode list.
func paramLen(modes []int, params ...[]float64) int {
	n := 1
	if modes != nil {
		n = len(modes)
	}
	for _, p := range params {
		if len(p) > n {
			n = len(p)
		}
	}
	return n
}
