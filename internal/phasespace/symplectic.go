package phasespace

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationSymplectic returns the symplectic matrix of phase rotations by
// the given angle per mode, in xxpp ordering.
func RotationSymplectic(angle []float64) *mat.Dense {
	n := len(angle)
	S := mat.NewDense(2*n, 2*n, nil)
	for i, a := range angle {
		c, s := math.Cos(a), math.Sin(a)
		S.Set(i, i, c)
		S.Set(n+i, n+i, c)
		S.Set(i, n+i, -s)
		S.Set(n+i, i, s)
	}
	return S
}

// SqueezingSymplectic returns the symplectic matrix of single-mode
// squeezing with magnitude r and angle phi per mode.
func SqueezingSymplectic(r, phi []float64) *mat.Dense {
	p, n := broadcast(r, phi)
	r, phi = p[0], p[1]
	S := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		cp, sp := math.Cos(phi[i]), math.Sin(phi[i])
		ch, sh := math.Cosh(r[i]), math.Sinh(r[i])
		S.Set(i, i, ch-cp*sh)
		S.Set(n+i, n+i, ch+cp*sh)
		S.Set(i, n+i, -sp*sh)
		S.Set(n+i, i, -sp*sh)
	}
	return S
}

// Displacement returns the phase-space displacement vector for
// alpha = x + iy per mode.
func Displacement(x, y []float64, hbar float64) *mat.VecDense {
	p, n := broadcast(x, y)
	x, y = p[0], p[1]
	d := mat.NewVecDense(2*n, nil)
	s := math.Sqrt(2 * hbar)
	for i := 0; i < n; i++ {
		d.SetVec(i, s*x[i])
		d.SetVec(n+i, s*y[i])
	}
	return d
}

// BeamSplitterSymplectic returns the 4x4 symplectic matrix of a
// beamsplitter with transmissivity angle theta and phase phi.
func BeamSplitterSymplectic(theta, phi float64) *mat.Dense {
	ct, st := math.Cos(theta), math.Sin(theta)
	cp, sp := math.Cos(phi), math.Sin(phi)
	return mat.NewDense(4, 4, []float64{
		ct, -cp * st, 0, -sp * st,
		cp * st, ct, -sp * st, 0,
		0, sp * st, ct, -cp * st,
		sp * st, 0, cp * st, ct,
	})
}

// TwoModeSqueezingSymplectic returns the 4x4 symplectic matrix of
// two-mode squeezing with magnitude r and angle phi.
func TwoModeSqueezingSymplectic(r, phi float64) *mat.Dense {
	cp, sp := math.Cos(phi), math.Sin(phi)
	ch, sh := math.Cosh(r), math.Sinh(r)
	return mat.NewDense(4, 4, []float64{
		ch, cp * sh, 0, sp * sh,
		cp * sh, ch, sp * sh, 0,
		0, sp * sh, ch, -cp * sh,
		sp * sh, 0, -cp * sh, ch,
	})
}

// MachZehnderSymplectic returns the 4x4 symplectic matrix of a
// Mach-Zehnder interferometer. With internal=true both phases act inside
// the interferometer arms; otherwise both act on the upper arm, phiA
// before the first beamsplitter and phiB after it.
func MachZehnderSymplectic(phiA, phiB float64, internal bool) *mat.Dense {
	ca, sa := math.Cos(phiA), math.Sin(phiA)
	cb, sb := math.Cos(phiB), math.Sin(phiB)
	cp, sp := math.Cos(phiA+phiB), math.Sin(phiA+phiB)

	var d []float64
	if internal {
		d = []float64{
			ca - cb, -sa - sb, sb - sa, -ca - cb,
			-sa - sb, cb - ca, -ca - cb, sa - sb,
			sa - sb, ca + cb, ca - cb, -sa - sb,
			ca + cb, sb - sa, -sa - sb, cb - ca,
		}
	} else {
		d = []float64{
			cp - ca, -sb, sa - sp, -1 - cb,
			-sa - sp, 1 - cb, -ca - cp, sb,
			sp - sa, 1 + cb, cp - ca, -sb,
			cp + ca, -sb, -sa - sp, 1 - cb,
		}
	}
	S := mat.NewDense(4, 4, d)
	S.Scale(0.5, S)
	return S
}
