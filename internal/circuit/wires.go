package circuit

import (
	"fmt"
	"sort"
)

// Wires describes where a component attaches to a circuit: four mode sets,
// each kept sorted. The variable order of the component's representation
// follows the blocks in declaration order: bra-out, bra-in, ket-out,
// ket-in, each block sorted by mode.
type Wires struct {
	OutBra []int
	InBra  []int
	OutKet []int
	InKet  []int
}

// NewWires sorts and copies the four mode sets. Duplicate modes within one
// set are a programmer error.
func NewWires(outBra, inBra, outKet, inKet []int) Wires {
	return Wires{
		OutBra: sortedCopy("bra-out", outBra),
		InBra:  sortedCopy("bra-in", inBra),
		OutKet: sortedCopy("ket-out", outKet),
		InKet:  sortedCopy("ket-in", inKet),
	}
}

func sortedCopy(name string, modes []int) []int {
	out := append([]int(nil), modes...)
	sort.Ints(out)
	for i := 1; i < len(out); i++ {
		if out[i] == out[i-1] {
			panic(fmt.Sprintf("circuit: duplicate mode %d in %s wires", out[i], name))
		}
	}
	return out
}

// NumWires returns the total variable count of the component.
func (w Wires) NumWires() int {
	return len(w.OutBra) + len(w.InBra) + len(w.OutKet) + len(w.InKet)
}

// Modes returns the sorted union of all modes the wires touch.
func (w Wires) Modes() []int {
	seen := map[int]bool{}
	var all []int
	for _, block := range [][]int{w.OutBra, w.InBra, w.OutKet, w.InKet} {
		for _, m := range block {
			if !seen[m] {
				seen[m] = true
				all = append(all, m)
			}
		}
	}
	sort.Ints(all)
	return all
}

// HasBra reports whether any bra wires exist.
func (w Wires) HasBra() bool { return len(w.OutBra)+len(w.InBra) > 0 }

// HasKet reports whether any ket wires exist.
func (w Wires) HasKet() bool { return len(w.OutKet)+len(w.InKet) > 0 }

// Equal reports block-wise equality.
func (w Wires) Equal(o Wires) bool {
	return equalModes(w.OutBra, o.OutBra) && equalModes(w.InBra, o.InBra) &&
		equalModes(w.OutKet, o.OutKet) && equalModes(w.InKet, o.InKet)
}

func equalModes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Adjoint swaps the bra and ket sides.
func (w Wires) Adjoint() Wires {
	return Wires{OutBra: w.OutKet, InBra: w.InKet, OutKet: w.OutBra, InKet: w.InBra}
}

// Dual swaps inputs and outputs on both sides.
func (w Wires) Dual() Wires {
	return Wires{OutBra: w.InBra, InBra: w.OutBra, OutKet: w.InKet, InKet: w.OutKet}
}

// block identifiers for variable bookkeeping
const (
	blockOutBra = iota
	blockInBra
	blockOutKet
	blockInKet
)

func (w Wires) blocks() [4][]int {
	return [4][]int{w.OutBra, w.InBra, w.OutKet, w.InKet}
}

// index returns the variable position of a mode within a block.
func (w Wires) index(block, mode int) int {
	off := 0
	bs := w.blocks()
	for b := 0; b < block; b++ {
		off += len(bs[b])
	}
	for i, m := range bs[block] {
		if m == mode {
			return off + i
		}
	}
	panic(fmt.Sprintf("circuit: mode %d not present in wire block %d", mode, block))
}

// wireKey identifies one surviving wire of a pairwise contraction.
type wireKey struct {
	fromOther bool
	block     int
	mode      int
}

// Matmul pairs w's outputs against o's inputs on shared modes. It returns
// the joined wires, the contraction index lists for both operands (bra
// pairs first, then ket pairs, modes ascending), and the permutation that
// maps the raw contraction result (w's survivors followed by o's
// survivors) onto the joined wires' canonical variable order.
func (w Wires) Matmul(o Wires) (joined Wires, selfIdx, otherIdx, perm []int, err error) {
	braModes := intersect(w.OutBra, o.InBra)
	ketModes := intersect(w.OutKet, o.InKet)

	for _, m := range braModes {
		selfIdx = append(selfIdx, w.index(blockOutBra, m))
		otherIdx = append(otherIdx, o.index(blockInBra, m))
	}
	for _, m := range ketModes {
		selfIdx = append(selfIdx, w.index(blockOutKet, m))
		otherIdx = append(otherIdx, o.index(blockInKet, m))
	}

	remOutBra := subtract(w.OutBra, braModes)
	remInBra := subtract(o.InBra, braModes)
	remOutKet := subtract(w.OutKet, ketModes)
	remInKet := subtract(o.InKet, ketModes)

	if m, clash := overlap(remOutBra, o.OutBra); clash {
		return joined, nil, nil, nil, fmt.Errorf("circuit: bra-out wires collide on mode %d: %w", m, ErrIncompatibleWires)
	}
	if m, clash := overlap(w.InBra, remInBra); clash {
		return joined, nil, nil, nil, fmt.Errorf("circuit: bra-in wires collide on mode %d: %w", m, ErrIncompatibleWires)
	}
	if m, clash := overlap(remOutKet, o.OutKet); clash {
		return joined, nil, nil, nil, fmt.Errorf("circuit: ket-out wires collide on mode %d: %w", m, ErrIncompatibleWires)
	}
	if m, clash := overlap(w.InKet, remInKet); clash {
		return joined, nil, nil, nil, fmt.Errorf("circuit: ket-in wires collide on mode %d: %w", m, ErrIncompatibleWires)
	}

	joined = NewWires(
		union(remOutBra, o.OutBra),
		union(w.InBra, remInBra),
		union(remOutKet, o.OutKet),
		union(w.InKet, remInKet),
	)

	// Natural order of the contraction result: w's surviving variables in
	// w's order, then o's surviving variables in o's order.
	contractedSelf := map[int]bool{}
	for _, i := range selfIdx {
		contractedSelf[i] = true
	}
	contractedOther := map[int]bool{}
	for _, i := range otherIdx {
		contractedOther[i] = true
	}
	natural := map[wireKey]int{}
	pos := 0
	var varPos int
	for b, block := range w.blocks() {
		for _, m := range block {
			if !contractedSelf[varPos] {
				natural[wireKey{false, b, m}] = pos
				pos++
			}
			varPos++
		}
	}
	varPos = 0
	for b, block := range o.blocks() {
		for _, m := range block {
			if !contractedOther[varPos] {
				natural[wireKey{true, b, m}] = pos
				pos++
			}
			varPos++
		}
	}

	ownBy := func(selfModes []int) func(m int) bool {
		set := map[int]bool{}
		for _, m := range selfModes {
			set[m] = true
		}
		return func(m int) bool { return set[m] }
	}
	fromSelfOB := ownBy(remOutBra)
	fromSelfIB := ownBy(w.InBra)
	fromSelfOK := ownBy(remOutKet)
	fromSelfIK := ownBy(w.InKet)

	perm = make([]int, 0, joined.NumWires())
	appendBlock := func(block int, modes []int, fromSelf func(int) bool) {
		for _, m := range modes {
			perm = append(perm, natural[wireKey{!fromSelf(m), block, m}])
		}
	}
	appendBlock(blockOutBra, joined.OutBra, fromSelfOB)
	appendBlock(blockInBra, joined.InBra, fromSelfIB)
	appendBlock(blockOutKet, joined.OutKet, fromSelfOK)
	appendBlock(blockInKet, joined.InKet, fromSelfIK)

	return joined, selfIdx, otherIdx, perm, nil
}

func intersect(a, b []int) []int {
	set := map[int]bool{}
	for _, m := range b {
		set[m] = true
	}
	var out []int
	for _, m := range a {
		if set[m] {
			out = append(out, m)
		}
	}
	return out
}

func subtract(a, b []int) []int {
	set := map[int]bool{}
	for _, m := range b {
		set[m] = true
	}
	var out []int
	for _, m := range a {
		if !set[m] {
			out = append(out, m)
		}
	}
	return out
}

func union(a, b []int) []int {
	out := append(append([]int(nil), a...), b...)
	sort.Ints(out)
	return out
}

func overlap(a, b []int) (int, bool) {
	set := map[int]bool{}
	for _, m := range a {
		set[m] = true
	}
	for _, m := range b {
		if set[m] {
			return m, true
		}
	}
	return 0, false
}
