package bargmann

import (
	"math"
	"math/cmplx"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

// Physics constructors for the standard states, gates and channels.
//
// Variable ordering conventions:
//   - ket states on M modes use M variables;
//   - density matrices use 2M variables, bra block first;
//   - unitaries on M modes use 2M variables, outputs first, inputs last;
//   - channels on M modes use 4M variables, ordered bra-out, bra-in,
//     ket-out, ket-in.
//
// Parameters accept one value per mode; a single value broadcasts across
// modes.

// broadcast expands scalar-or-per-mode parameters to a common length.
func broadcast(params ...[]float64) ([][]float64, int) {
	n := 1
	for _, p := range params {
		if len(p) > n {
			n = len(p)
		}
	}
	out := make([][]float64, len(params))
	for i, p := range params {
		switch len(p) {
		case n:
			out[i] = p
		case 1:
			tiled := make([]float64, n)
			for j := range tiled {
				tiled[j] = p[0]
			}
			out[i] = tiled
		default:
			panic("bargmann: parameter lengths must be 1 or equal")
		}
	}
	return out, n
}

func mustNew(a cvmath.Matrix, b cvmath.Vector, c complex128, be cvmath.Backend) Triple {
	t, err := FromSingle(a, b, c, be)
	if err != nil {
		panic(err)
	}
	return t
}

// Vacuum returns the n-mode vacuum ket triple (A=0, b=0, c=1).
func Vacuum(n int, be cvmath.Backend) Triple {
	return mustNew(cvmath.NewMatrix(n, n), cvmath.NewVector(n), 1, be)
}

// Coherent returns the ket triple of coherent states with displacement
// alpha = x + iy per mode: A=0, b=alpha, c=exp(-|alpha|^2/2).
func Coherent(x, y []float64, be cvmath.Backend) Triple {
	p, n := broadcast(x, y)
	x, y = p[0], p[1]
	b := cvmath.NewVector(n)
	c := complex128(1)
	for i := 0; i < n; i++ {
		b[i] = complex(x[i], y[i])
		c *= complex(math.Exp(-0.5*(x[i]*x[i]+y[i]*y[i])), 0)
	}
	return mustNew(cvmath.NewMatrix(n, n), b, c, be)
}

// SqueezedVacuum returns the ket triple of squeezed vacuum states with
// magnitude r and angle phi per mode.
func SqueezedVacuum(r, phi []float64, be cvmath.Backend) Triple {
	p, n := broadcast(r, phi)
	r, phi = p[0], p[1]
	a := cvmath.NewMatrix(n, n)
	c := complex128(1)
	for i := 0; i < n; i++ {
		tanh := complex(math.Tanh(r[i]), 0)
		a.Set(i, i, -tanh*cmplx.Exp(complex(0, phi[i])))
		c /= cmplx.Sqrt(complex(math.Cosh(r[i]), 0))
	}
	return mustNew(a, cvmath.NewVector(n), c, be)
}

// DisplacedSqueezed returns the ket triple of displaced squeezed states.
func DisplacedSqueezed(r, phi, x, y []float64, be cvmath.Backend) Triple {
	p, n := broadcast(r, phi, x, y)
	r, phi, x, y = p[0], p[1], p[2], p[3]
	a := cvmath.NewMatrix(n, n)
	b := cvmath.NewVector(n)
	c := complex128(1)
	for i := 0; i < n; i++ {
		alpha := complex(x[i], y[i])
		tanh := complex(math.Tanh(r[i]), 0) * cmplx.Exp(complex(0, phi[i]))
		a.Set(i, i, -tanh)
		b[i] = alpha + cmplx.Conj(alpha)*tanh
		c *= cmplx.Exp(-0.5*alpha*cmplx.Conj(alpha)-0.5*cmplx.Conj(alpha)*cmplx.Conj(alpha)*tanh) /
			cmplx.Sqrt(complex(math.Cosh(r[i]), 0))
	}
	return mustNew(a, b, c, be)
}

// TwoModeSqueezedVacuum returns the ket triple of the two-mode squeezed
// vacuum with magnitude r and angle phi.
func TwoModeSqueezedVacuum(r, phi float64, be cvmath.Backend) Triple {
	a := cvmath.NewMatrix(2, 2)
	tanh := complex(math.Tanh(r), 0) * cmplx.Exp(complex(0, phi))
	a.Set(0, 1, tanh)
	a.Set(1, 0, tanh)
	c := complex(1/math.Cosh(r), 0)
	return mustNew(a, cvmath.NewVector(2), c, be)
}

// Thermal returns the density-matrix triple of thermal states with mean
// photon number nbar per mode, over 2n variables (bra block first).
func Thermal(nbar []float64, be cvmath.Backend) Triple {
	n := len(nbar)
	a := cvmath.NewMatrix(2*n, 2*n)
	c := complex128(1)
	for i, nb := range nbar {
		g := complex(nb/(nb+1), 0)
		a.Set(i, n+i, g)
		a.Set(n+i, i, g)
		c /= complex(nb+1, 0)
	}
	return mustNew(a, cvmath.NewVector(2*n), c, be)
}

// Rotation returns the unitary triple of phase rotations by theta per
// mode, over 2n variables (outputs first).
func Rotation(theta []float64, be cvmath.Backend) Triple {
	n := len(theta)
	a := cvmath.NewMatrix(2*n, 2*n)
	for i, th := range theta {
		e := cmplx.Exp(complex(0, th))
		a.Set(i, n+i, e)
		a.Set(n+i, i, e)
	}
	return mustNew(a, cvmath.NewVector(2*n), 1, be)
}

// Displacement returns the unitary triple of displacement gates with
// alpha = x + iy per mode, over 2n variables (outputs first).
func Displacement(x, y []float64, be cvmath.Backend) Triple {
	p, n := broadcast(x, y)
	x, y = p[0], p[1]
	a := cvmath.NewMatrix(2*n, 2*n)
	b := cvmath.NewVector(2 * n)
	c := complex128(1)
	for i := 0; i < n; i++ {
		alpha := complex(x[i], y[i])
		a.Set(i, n+i, 1)
		a.Set(n+i, i, 1)
		b[i] = alpha
		b[n+i] = -cmplx.Conj(alpha)
		c *= cmplx.Exp(-0.5 * alpha * cmplx.Conj(alpha))
	}
	return mustNew(a, b, c, be)
}

// Squeezing returns the unitary triple of squeezing gates with magnitude
// r and angle delta per mode, over 2n variables (outputs first).
func Squeezing(r, delta []float64, be cvmath.Backend) Triple {
	p, n := broadcast(r, delta)
	r, delta = p[0], p[1]
	a := cvmath.NewMatrix(2*n, 2*n)
	c := complex128(1)
	for i := 0; i < n; i++ {
		tanh := complex(math.Tanh(r[i]), 0)
		sech := complex(1/math.Cosh(r[i]), 0)
		e := cmplx.Exp(complex(0, delta[i]))
		a.Set(i, i, -e*tanh)
		a.Set(n+i, n+i, cmplx.Conj(e)*tanh)
		a.Set(i, n+i, sech)
		a.Set(n+i, i, sech)
		c /= cmplx.Sqrt(complex(math.Cosh(r[i]), 0))
	}
	return mustNew(a, cvmath.NewVector(2*n), c, be)
}

// TwoModeSqueezing returns the unitary triple of the two-mode squeezing
// gate with magnitude r and angle phi, over 4 variables
// (out_0, out_1, in_0, in_1).
func TwoModeSqueezing(r, phi float64, be cvmath.Backend) Triple {
	tanh := complex(math.Tanh(r), 0) * cmplx.Exp(complex(0, phi))
	sech := complex(1/math.Cosh(r), 0)
	a := cvmath.NewMatrix(4, 4)
	a.Set(0, 1, tanh)
	a.Set(1, 0, tanh)
	a.Set(2, 3, -cmplx.Conj(tanh))
	a.Set(3, 2, -cmplx.Conj(tanh))
	a.Set(0, 2, sech)
	a.Set(2, 0, sech)
	a.Set(1, 3, sech)
	a.Set(3, 1, sech)
	c := complex(1/math.Cosh(r), 0)
	return mustNew(a, cvmath.NewVector(4), c, be)
}

// BeamSplitter returns the unitary triple of a beamsplitter with
// transmissivity angle theta and phase phi, over 4 variables
// (out_0, out_1, in_0, in_1).
func BeamSplitter(theta, phi float64, be cvmath.Backend) Triple {
	ct := complex(math.Cos(theta), 0)
	st := complex(math.Sin(theta), 0)
	e := cmplx.Exp(complex(0, phi))
	a := cvmath.NewMatrix(4, 4)
	// coupling block between outputs and inputs
	v := [2][2]complex128{
		{ct, -cmplx.Conj(e) * st},
		{e * st, ct},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			a.Set(i, 2+j, v[i][j])
			a.Set(2+j, i, v[i][j])
		}
	}
	return mustNew(a, cvmath.NewVector(4), 1, be)
}

// Attenuator returns the channel triple of the lossy bosonic channel with
// the given transmissivity per mode, over 4n variables ordered bra-out,
// bra-in, ket-out, ket-in.
func Attenuator(transmissivity []float64, be cvmath.Backend) Triple {
	n := len(transmissivity)
	a := cvmath.NewMatrix(4*n, 4*n)
	for i, t := range transmissivity {
		s := complex(math.Sqrt(t), 0)
		bo, bi, ko, ki := i, n+i, 2*n+i, 3*n+i
		a.Set(bo, bi, s)
		a.Set(bi, bo, s)
		a.Set(ko, ki, s)
		a.Set(ki, ko, s)
		a.Set(bi, ki, complex(1-t, 0))
		a.Set(ki, bi, complex(1-t, 0))
	}
	return mustNew(a, cvmath.NewVector(4*n), 1, be)
}

// Amplifier returns the channel triple of the phase-insensitive amplifier
// with the given gain (>= 1) per mode, over 4n variables ordered bra-out,
// bra-in, ket-out, ket-in.
func Amplifier(gain []float64, be cvmath.Backend) Triple {
	n := len(gain)
	a := cvmath.NewMatrix(4*n, 4*n)
	c := complex128(1)
	for i, g := range gain {
		s := complex(1/math.Sqrt(g), 0)
		r := complex(1-1/g, 0)
		bo, bi, ko, ki := i, n+i, 2*n+i, 3*n+i
		a.Set(bo, bi, s)
		a.Set(bi, bo, s)
		a.Set(ko, ki, s)
		a.Set(ki, ko, s)
		a.Set(bo, ko, r)
		a.Set(ko, bo, r)
		c /= complex(g, 0)
	}
	return mustNew(a, cvmath.NewVector(4*n), c, be)
}

// QuadratureKernel returns the kernel triple mapping a single Bargmann
// ket variable to the position wavefunction at quadrature angle zero:
// contracting variable 1 of the kernel against a ket variable yields the
// wavefunction's exponential-quadratic form in the quadrature variable 0.
// Quadrature variables are dimensionless (scaled by sqrt(hbar)).
func QuadratureKernel(hbar float64, be cvmath.Backend) Triple {
	a := cvmath.NewMatrix(2, 2)
	a.Set(0, 0, -1)
	a.Set(1, 1, -1)
	a.Set(0, 1, complex(math.Sqrt2, 0))
	a.Set(1, 0, complex(math.Sqrt2, 0))
	c := complex(math.Pow(math.Pi*hbar, -0.25), 0)
	return mustNew(a, cvmath.NewVector(2), c, be)
}
