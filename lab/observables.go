package lab

import (
	"gonum.org/v1/gonum/mat"

	"github.com/lattica-dev/lattica/internal/phasespace"
	"github.com/lattica-dev/lattica/internal/rep"
)

// NumberMeans returns the mean photon number of each mode of a Gaussian
// state.
func (l *Lab) NumberMeans(g *rep.Gaussian) []float64 {
	return phasespace.NumberMeans(g.Cov, g.Means, g.HBar)
}

// NumberCov returns the photon-number covariance matrix of a Gaussian
// state.
func (l *Lab) NumberCov(g *rep.Gaussian) *mat.Dense {
	return phasespace.NumberCov(g.Cov, g.Means, g.HBar)
}

// Purity returns tr(rho^2) of a Gaussian state.
func (l *Lab) Purity(g *rep.Gaussian) float64 {
	return phasespace.Purity(g.Cov, g.HBar)
}

// Fidelity computes the overlap of two materialized Fock states; at least
// one must be a ket.
func (l *Lab) Fidelity(a, b *rep.Fock) (float64, error) {
	return rep.Fidelity(a, b)
}

// AutoShape picks a per-mode Fock cutoff for a Gaussian state from its
// photon-number statistics, clamped to the configured bounds.
func (l *Lab) AutoShape(g *rep.Gaussian) []int {
	return phasespace.Autocutoffs(g.Cov, g.Means, g.HBar,
		l.cfg.AutocutoffMin, l.cfg.AutocutoffMax, l.cfg.AutocutoffStdevFactor)
}

// ToBargmann converts a Gaussian state to its holomorphic triple.
func (l *Lab) ToBargmann(g *rep.Gaussian) (*rep.Bargmann, error) {
	return rep.ToBargmann(g, l.be)
}

// ToFock converts a Gaussian state to a Fock-amplitude tensor with the
// given shape. A nil shape uses AutoShape.
func (l *Lab) ToFock(g *rep.Gaussian, shape []int) (*rep.Fock, error) {
	if shape == nil {
		per := l.AutoShape(g)
		shape = per
		if !g.IsPure(1e-6) {
			shape = append(per, per...)
		}
	}
	b, err := rep.ToBargmann(g, l.be)
	if err != nil {
		return nil, err
	}
	return rep.ToFock(b, shape, l.be)
}
