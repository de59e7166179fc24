package lab

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/lattica-dev/lattica/internal/phasespace"
	"github.com/lattica-dev/lattica/internal/rep"
)

// Projector is a single-mode Gaussian projector for general-dyne
// measurement: the covariance and means of the state projected onto.
type Projector struct {
	Cov   *mat.Dense
	Means *mat.VecDense
}

// Homodyne returns a projector for a quadrature measurement at angle phi
// with the given outcome. The projector is a finitely squeezed state; the
// squeezing magnitude comes from the settings and controls how closely it
// approximates an ideal quadrature eigenstate.
func (l *Lab) Homodyne(phi, outcome float64) Projector {
	r := l.cfg.HomodyneSqueezing
	cov, _ := phasespace.SqueezedVacuumState([]float64{r}, []float64{0}, l.cfg.HBar)
	rot := phasespace.RotationSymplectic([]float64{phi})

	var tmp, rotated mat.Dense
	tmp.Mul(cov, rot.T())
	rotated.Mul(rot, &tmp)

	means := mat.NewVecDense(2, []float64{
		outcome * math.Cos(phi),
		outcome * math.Sin(phi),
	})
	return Projector{Cov: &rotated, Means: means}
}

// Heterodyne returns a projector for a joint x,p measurement with the
// given outcome: a coherent-state projector centered at (x, y).
func (l *Lab) Heterodyne(x, y float64) Projector {
	cov, means := phasespace.CoherentState([]float64{x}, []float64{y}, l.cfg.HBar)
	return Projector{Cov: cov, Means: means}
}

// Measure performs a general-dyne measurement of the given modes of a
// Gaussian state. One projector per measured mode; the joint projector is
// their direct sum. It returns the outcome probability density and the
// conditional state on the remaining modes, or a nil state when every mode
// is measured.
func (l *Lab) Measure(g *rep.Gaussian, projectors []Projector, modes []int) (float64, *rep.Gaussian, error) {
	// Joint projector in xxpp ordering: x rows of every measured mode
	// first, then the p rows.
	k := len(projectors)
	projCov := mat.NewDense(2*k, 2*k, nil)
	projMeans := mat.NewVecDense(2*k, nil)
	for i, p := range projectors {
		projCov.Set(i, i, p.Cov.At(0, 0))
		projCov.Set(i, k+i, p.Cov.At(0, 1))
		projCov.Set(k+i, i, p.Cov.At(1, 0))
		projCov.Set(k+i, k+i, p.Cov.At(1, 1))
		projMeans.SetVec(i, p.Means.AtVec(0))
		projMeans.SetVec(k+i, p.Means.AtVec(1))
	}
	prob, cov, means, err := phasespace.GeneralDyne(g.Cov, g.Means, projCov, projMeans, modes)
	if err != nil {
		return 0, nil, err
	}
	if cov == nil {
		return prob, nil, nil
	}
	return prob, &rep.Gaussian{Cov: cov, Means: means, HBar: g.HBar}, nil
}
