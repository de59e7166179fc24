package lab

import (
	"gonum.org/v1/gonum/mat"

	"github.com/lattica-dev/lattica/internal/phasespace"
	"github.com/lattica-dev/lattica/internal/rep"
)

// Gaussian-side constructors. These hold covariance and means directly and
// support symplectic evolution and general-dyne measurement without any
// cutoff.

// GaussianVacuum returns the n-mode vacuum in phase space.
func (l *Lab) GaussianVacuum(n int) *rep.Gaussian {
	cov, means := phasespace.VacuumState(n, l.cfg.HBar)
	return &rep.Gaussian{Cov: cov, Means: means, HBar: l.cfg.HBar}
}

// GaussianCoherent returns coherent states in phase space.
func (l *Lab) GaussianCoherent(x, y []float64) *rep.Gaussian {
	cov, means := phasespace.CoherentState(x, y, l.cfg.HBar)
	return &rep.Gaussian{Cov: cov, Means: means, HBar: l.cfg.HBar}
}

// GaussianSqueezedVacuum returns squeezed vacuum states in phase space.
func (l *Lab) GaussianSqueezedVacuum(r, phi []float64) *rep.Gaussian {
	cov, means := phasespace.SqueezedVacuumState(r, phi, l.cfg.HBar)
	return &rep.Gaussian{Cov: cov, Means: means, HBar: l.cfg.HBar}
}

// GaussianThermal returns thermal states in phase space.
func (l *Lab) GaussianThermal(nbar []float64) *rep.Gaussian {
	cov, means := phasespace.ThermalState(nbar, l.cfg.HBar)
	return &rep.Gaussian{Cov: cov, Means: means, HBar: l.cfg.HBar}
}

// GaussianDisplacedSqueezed returns displaced squeezed states in phase
// space.
func (l *Lab) GaussianDisplacedSqueezed(r, phi, x, y []float64) *rep.Gaussian {
	cov, means := phasespace.DisplacedSqueezedState(r, phi, x, y, l.cfg.HBar)
	return &rep.Gaussian{Cov: cov, Means: means, HBar: l.cfg.HBar}
}

// GaussianTwoModeSqueezedVacuum returns the two-mode squeezed vacuum in
// phase space.
func (l *Lab) GaussianTwoModeSqueezedVacuum(r, phi float64) *rep.Gaussian {
	cov, means := phasespace.TwoModeSqueezedVacuumState(r, phi, l.cfg.HBar)
	return &rep.Gaussian{Cov: cov, Means: means, HBar: l.cfg.HBar}
}

// ApplySymplectic evolves a Gaussian state through the symplectic matrix S
// and displacement d acting on the given modes.
func (l *Lab) ApplySymplectic(g *rep.Gaussian, S *mat.Dense, d *mat.VecDense, modes []int) (*rep.Gaussian, error) {
	cov, means, err := phasespace.CPTP(g.Cov, g.Means, S, nil, d, modes)
	if err != nil {
		return nil, err
	}
	return &rep.Gaussian{Cov: cov, Means: means, HBar: g.HBar}, nil
}

// ApplyLoss sends the given modes of a Gaussian state through pure loss
// with the given per-mode transmissivity.
func (l *Lab) ApplyLoss(g *rep.Gaussian, transmissivity []float64, modes []int) (*rep.Gaussian, error) {
	X := phasespace.LossX(transmissivity)
	Y := phasespace.LossY(transmissivity, g.HBar)
	cov, means, err := phasespace.CPTP(g.Cov, g.Means, X, Y, nil, modes)
	if err != nil {
		return nil, err
	}
	return &rep.Gaussian{Cov: cov, Means: means, HBar: g.HBar}, nil
}

// TraceOut discards the listed modes of a Gaussian state. Discarding every
// mode returns a nil state.
func (l *Lab) TraceOut(g *rep.Gaussian, modes []int) (*rep.Gaussian, error) {
	cov, means, err := phasespace.Trace(g.Cov, g.Means, modes)
	if err != nil {
		return nil, err
	}
	if cov == nil {
		return nil, nil
	}
	return &rep.Gaussian{Cov: cov, Means: means, HBar: g.HBar}, nil
}
