package circuit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lattica-dev/lattica/internal/bargmann"
	"github.com/lattica-dev/lattica/internal/lattice"
)

// DefaultPromotionCutoff bounds the Fock axes that have no better size
// hint when a Bargmann component is promoted for a Fock contraction.
var DefaultPromotionCutoff = 50

// Component couples a representation to a wire descriptor. The
// representation is either a Bargmann triple or a dense Fock tensor, with
// one variable (or tensor axis) per wire, ordered bra-out, bra-in,
// ket-out, ket-in.
type Component struct {
	id     uuid.UUID
	name   string
	wires  Wires
	triple bargmann.Triple
	tensor *lattice.FockTensor // non-nil means Fock representation
}

// New builds a Bargmann-represented component. The triple's variable count
// must match the wire count.
func New(name string, t bargmann.Triple, w Wires) (*Component, error) {
	if t.Dim() != w.NumWires() {
		return nil, fmt.Errorf("circuit: %s has %d variables for %d wires: %w",
			name, t.Dim(), w.NumWires(), ErrIncompatibleWires)
	}
	return &Component{id: uuid.New(), name: name, wires: w, triple: t}, nil
}

// NewFock builds a Fock-represented component. The tensor rank must match
// the wire count.
func NewFock(name string, tensor *lattice.FockTensor, w Wires) (*Component, error) {
	if tensor.Rank() != w.NumWires() {
		return nil, fmt.Errorf("circuit: %s has rank %d for %d wires: %w",
			name, tensor.Rank(), w.NumWires(), ErrIncompatibleWires)
	}
	return &Component{id: uuid.New(), name: name, wires: w, tensor: tensor}, nil
}

// ID returns the component's unique identifier.
func (c *Component) ID() uuid.UUID { return c.id }

// Name returns the component's name.
func (c *Component) Name() string { return c.name }

// Wires returns the wire descriptor.
func (c *Component) Wires() Wires { return c.wires }

// IsFock reports whether the component carries a dense Fock tensor.
func (c *Component) IsFock() bool { return c.tensor != nil }

// Triple returns the Bargmann triple; the second result is false for Fock
// components.
func (c *Component) Triple() (bargmann.Triple, bool) {
	return c.triple, c.tensor == nil
}

// Tensor returns the Fock tensor, or nil for Bargmann components.
func (c *Component) Tensor() *lattice.FockTensor { return c.tensor }

// Modes returns the sorted modes this component touches.
func (c *Component) Modes() []int { return c.wires.Modes() }

// Equal compares representation and wires within tol; names and ids are
// ignored.
func (c *Component) Equal(other *Component, tol float64) bool {
	if !c.wires.Equal(other.wires) || c.IsFock() != other.IsFock() {
		return false
	}
	if c.IsFock() {
		if !equalModes(c.tensor.Shape(), other.tensor.Shape()) {
			return false
		}
		sub := c.tensor.Add(other.tensor.Scale(-1))
		var worst float64
		for _, v := range sub.Data() {
			if m := real(v)*real(v) + imag(v)*imag(v); m > worst {
				worst = m
			}
		}
		return worst <= tol*tol
	}
	return c.triple.EqualWithin(other.triple, tol)
}

// blockPerm builds the variable permutation realizing a rearrangement of
// whole wire blocks. order lists the old blocks in their new sequence.
func (c *Component) blockPerm(order [4]int) []int {
	bs := c.wires.blocks()
	starts := [4]int{}
	off := 0
	for b := 0; b < 4; b++ {
		starts[b] = off
		off += len(bs[b])
	}
	perm := make([]int, 0, off)
	for _, b := range order {
		for i := 0; i < len(bs[b]); i++ {
			perm = append(perm, starts[b]+i)
		}
	}
	return perm
}

func (c *Component) rearranged(name string, w Wires, order [4]int) *Component {
	perm := c.blockPerm(order)
	out := &Component{id: uuid.New(), name: name, wires: w}
	if c.IsFock() {
		out.tensor = c.tensor.Conj().Reorder(perm)
		return out
	}
	t, err := c.triple.Conj().Reorder(perm)
	if err != nil {
		panic(err) // perm is a permutation of the triple's own variables
	}
	out.triple = t
	return out
}

// Adjoint returns the bra/ket-swapped, conjugated component.
func (c *Component) Adjoint() *Component {
	return c.rearranged(c.name+"†", c.wires.Adjoint(),
		[4]int{blockOutKet, blockInKet, blockOutBra, blockInBra})
}

// Dual returns the input/output-swapped, conjugated component.
func (c *Component) Dual() *Component {
	return c.rearranged(c.name+"*", c.wires.Dual(),
		[4]int{blockInBra, blockOutBra, blockInKet, blockOutKet})
}

// On relabels the component onto the given modes. Every non-empty wire
// block must have exactly len(modes) wires.
func (c *Component) On(modes []int) (*Component, error) {
	for _, block := range c.wires.blocks() {
		if len(block) > 0 && len(block) != len(modes) {
			return nil, &ModesError{Op: c.name + ".On", Want: len(block), Got: modes}
		}
	}
	pick := func(block []int) []int {
		if len(block) == 0 {
			return nil
		}
		return modes
	}
	w := NewWires(pick(c.wires.OutBra), pick(c.wires.InBra), pick(c.wires.OutKet), pick(c.wires.InKet))
	out := *c
	out.id = uuid.New()
	out.wires = w
	return &out, nil
}

// Contract joins two components, pairing c's outputs with other's inputs
// on shared modes. When exactly one operand is in Fock representation the
// other is promoted to Fock first.
func (c *Component) Contract(other *Component) (*Component, error) {
	a, b := c, other
	var err error
	if a.IsFock() != b.IsFock() {
		if a.IsFock() {
			b, err = b.promoteLike(a, false)
		} else {
			a, err = a.promoteLike(b, true)
		}
		if err != nil {
			return nil, err
		}
	}

	joined, selfIdx, otherIdx, perm, err := a.wires.Matmul(b.wires)
	if err != nil {
		return nil, err
	}

	out := &Component{id: uuid.New(), name: a.name + "@" + b.name, wires: joined}
	if a.IsFock() {
		t, err := lattice.Contract(a.tensor, b.tensor, selfIdx, otherIdx)
		if err != nil {
			return nil, err
		}
		out.tensor = t.Reorder(perm)
		return out, nil
	}

	t, err := a.triple.Mark(selfIdx...).Contract(b.triple.Mark(otherIdx...))
	if err != nil {
		return nil, err
	}
	if t, err = t.Reorder(perm); err != nil {
		return nil, err
	}
	out.triple = t
	return out, nil
}

// promoteLike converts a Bargmann component to Fock so it can contract
// with partner. Axes that meet the partner take the partner's cutoffs;
// the rest take the largest of those, or DefaultPromotionCutoff when
// nothing meets.
func (c *Component) promoteLike(partner *Component, selfFirst bool) (*Component, error) {
	var selfIdx, otherIdx []int
	var err error
	if selfFirst {
		_, selfIdx, otherIdx, _, err = c.wires.Matmul(partner.wires)
	} else {
		_, otherIdx, selfIdx, _, err = partner.wires.Matmul(c.wires)
	}
	if err != nil {
		return nil, err
	}
	shape := make([]int, c.wires.NumWires())
	fallback := 0
	for k, ax := range selfIdx {
		size := partner.tensor.Shape()[otherIdx[k]]
		shape[ax] = size
		if size > fallback {
			fallback = size
		}
	}
	if fallback == 0 {
		fallback = DefaultPromotionCutoff
	}
	for i := range shape {
		if shape[i] == 0 {
			shape[i] = fallback
		}
	}
	return c.ToFock(shape)
}

// ToFock materializes the component's Bargmann triple as a dense tensor
// with the given per-wire shape, summing over batch entries. Fock
// components are returned unchanged.
func (c *Component) ToFock(shape []int) (*Component, error) {
	if c.IsFock() {
		return c, nil
	}
	var sum *lattice.FockTensor
	for i := 0; i < c.triple.BatchSize(); i++ {
		g, err := lattice.Amplitudes(c.triple.A(i), c.triple.B(i), c.triple.C(i), shape)
		if err != nil {
			return nil, err
		}
		if sum == nil {
			sum = g
		} else {
			sum = sum.Add(g)
		}
	}
	return &Component{id: uuid.New(), name: c.name, wires: c.wires, tensor: sum}, nil
}

// Compose contracts the components the way a circuit diagram would,
// inserting adjoints when a one-sided object meets a two-sided one.
func (c *Component) Compose(other *Component) (*Component, error) {
	ws, wo := c.wires, other.wires

	switch {
	case ws.HasKet() && ws.HasBra():
		if wo.HasKet() && wo.HasBra() {
			return c.Contract(other)
		}
		step, err := c.Contract(other)
		if err != nil {
			return nil, err
		}
		return step.Contract(other.Adjoint())

	case ws.HasKet():
		if wo.HasKet() && wo.HasBra() {
			step, err := c.Contract(c.Adjoint())
			if err != nil {
				return nil, err
			}
			return step.Contract(other)
		}
		if wo.HasKet() {
			return c.Contract(other)
		}

	case ws.HasBra():
		if wo.HasKet() && wo.HasBra() {
			step, err := c.Contract(c.Adjoint())
			if err != nil {
				return nil, err
			}
			return step.Contract(other)
		}
		if wo.HasBra() {
			return c.Contract(other)
		}
	}
	return nil, fmt.Errorf("circuit: cannot compose %s with %s: %w", c.name, other.name, ErrIncompatibleWires)
}

// Add sums two components with identical wires.
func (c *Component) Add(other *Component) (*Component, error) {
	if !c.wires.Equal(other.wires) {
		return nil, fmt.Errorf("circuit: cannot add components with different wires: %w", ErrIncompatibleWires)
	}
	if c.IsFock() != other.IsFock() {
		return nil, fmt.Errorf("circuit: cannot add %s and %s representations: %w",
			repName(c), repName(other), ErrIncompatibleWires)
	}
	out := &Component{id: uuid.New(), name: c.name, wires: c.wires}
	if c.IsFock() {
		out.tensor = c.tensor.Add(other.tensor)
		return out, nil
	}
	t, err := c.triple.Add(other.triple)
	if err != nil {
		return nil, err
	}
	out.triple = t
	return out, nil
}

// Scale multiplies the component's amplitude by s.
func (c *Component) Scale(s complex128) *Component {
	out := &Component{id: uuid.New(), name: c.name, wires: c.wires}
	if c.IsFock() {
		out.tensor = c.tensor.Scale(s)
		return out
	}
	out.triple = c.triple.Scale(s)
	return out
}

func repName(c *Component) string {
	if c.IsFock() {
		return "fock"
	}
	return "bargmann"
}

func (c *Component) String() string {
	return fmt.Sprintf("Component(name=%s, modes=%v, rep=%s)", c.name, c.Modes(), repName(c))
}
