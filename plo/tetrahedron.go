package plo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// blochlStepWeight evaluates the Blöchl closed-form corner weight w(eps) for
// a single tetrahedron with ascending corner energies e (spec §4.8): the
// linear-interpolation estimate of the fraction of the tetrahedron's volume
// with band energy below eps.
func blochlStepWeight(eps float64, e [4]float64) float64 {
	e1, e2, e3, e4 := e[0], e[1], e[2], e[3]
	switch {
	case eps <= e1:
		return 0
	case eps <= e2:
		if e2 == e1 {
			return 0
		}
		return (eps - e1) * (eps - e1) * (eps - e1) / ((e2 - e1) * (e3 - e1) * (e4 - e1))
	case eps <= e3:
		if e3 == e2 {
			return blochlStepWeight(math.Nextafter(e2, e3), e)
		}
		k := (e3 - e1 + e4 - e2) / ((e3 - e2) * (e4 - e2))
		d := eps - e2
		num := (e2-e1)*(e2-e1) + 3*(e2-e1)*d + 3*d*d - k*d*d*d
		return num / ((e3 - e1) * (e4 - e1))
	case eps <= e4:
		return 1 - (e4-eps)*(e4-eps)*(e4-eps)/((e4-e1)*(e4-e2)*(e4-e3))
	default:
		return 1
	}
}

// blochlDOSWeight is dw/deps of blochlStepWeight, the per-tetrahedron
// contribution to the density of states at eps.
func blochlDOSWeight(eps float64, e [4]float64) float64 {
	e1, e2, e3, e4 := e[0], e[1], e[2], e[3]
	switch {
	case eps <= e1, eps > e4:
		return 0
	case eps <= e2:
		if e2 == e1 || e3 == e1 || e4 == e1 {
			return 0
		}
		return 3 * (eps - e1) * (eps - e1) / ((e2 - e1) * (e3 - e1) * (e4 - e1))
	case eps <= e3:
		if e3 == e2 || e4 == e2 || e3 == e1 || e4 == e1 {
			return 0
		}
		k := (e3 - e1 + e4 - e2) / ((e3 - e2) * (e4 - e2))
		d := eps - e2
		return (3*(e2-e1) + 6*d - 3*k*d*d) / ((e3 - e1) * (e4 - e1))
	default:
		if e4 == e1 || e4 == e2 || e4 == e3 {
			return 0
		}
		d := e4 - eps
		return 3 * d * d / ((e4 - e1) * (e4 - e2) * (e4 - e3))
	}
}

// tetrahedronWeights returns, for a fixed band b and spin s, the per-k-point
// Brillouin-zone integration weight W[k] at energy eps: each tetrahedron's
// Blöchl weight (or its eps-derivative, if dos is true) is split equally
// across its four corner k-points, scaled by the tetrahedron's multiplicity
// and divided by the total tetrahedron weight Σ_t mult[t] * volt (spec
// §4.8). Tetrahedron k-indices (itet[t,1..4]) are one-based, matching the
// one-based band-window convention used elsewhere in the configuration
// surface.
func tetrahedronWeights(ks *KSData, b, s int, eps float64, dos bool) []float64 {
	nkpt := ks.Enk.N1
	w := make([]float64, nkpt)

	var totalMult float64
	for _, t := range ks.Itet {
		totalMult += float64(t[0])
	}
	total := totalMult * ks.Volt
	if total == 0 {
		return w
	}

	for _, t := range ks.Itet {
		mult := float64(t[0])
		var e [4]float64
		var kidx [4]int
		for c := 0; c < 4; c++ {
			k := int(t[c+1]) - 1
			kidx[c] = k
			e[c] = ks.Enk.At(b, k, s)
		}
		sorted := e
		sort.Float64s(sorted[:])

		var g float64
		if dos {
			g = blochlDOSWeight(eps, sorted)
		} else {
			g = blochlStepWeight(eps, sorted)
		}
		contrib := mult * g / (4 * total)
		for _, k := range kidx {
			w[k] += contrib
		}
	}
	return w
}

// tetrahedronMesh builds the DOS energy mesh for a group's window (spec
// §4.8): step 0.01, spanning the window's floor/ceil band-energy extent for
// band windows, or the raw (lo, hi) pair for energy windows.
func tetrahedronMesh(pw PrWindow, enk *Array3) []float64 {
	const step = 0.01

	var lo, hi float64
	if pw.BWin.Kind == BoundBand {
		emin, emax := windowEnkExtent(pw, enk)
		lo, hi = math.Floor(emin), math.Ceil(emax)
	} else {
		lo, hi = pw.BWin.Lo, pw.BWin.Hi
	}

	n := int(math.Round((hi-lo)/step)) + 1
	if n < 2 {
		n = 2
	}
	mesh := make([]float64, n)
	floats.Span(mesh, lo, hi)
	return mesh
}

func windowEnkExtent(pw PrWindow, enk *Array3) (min, max float64) {
	first := true
	for b := pw.Bmin; b <= pw.Bmax; b++ {
		for k := 0; k < enk.N1; k++ {
			for s := 0; s < enk.N2; s++ {
				v := enk.At(b, k, s)
				if first {
					min, max = v, v
					first = false
					continue
				}
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
		}
	}
	return min, max
}

// PartialDOS computes one group's partial density of states over its
// tetrahedron-integration mesh (spec §4.8):
//
//	D_g[q,s,m] = Σ_{b,k} W[b,k,s] * |F_g[q,b,k,s]|^2
//
// filtered is the group's orthonormalised, window-padded projector array;
// pw is its resolved window.
func PartialDOS(filtered *CArray4, pw PrWindow, ks *KSData) (*DOSResult, error) {
	if ks.Itet == nil {
		return nil, newError(ShapeMismatch, "no tetrahedra available for DOS")
	}

	mesh := tetrahedronMesh(pw, ks.Enk)
	d, nkpt, nspin := filtered.N0, filtered.N2, filtered.N3
	values := NewArray3(d, nspin, len(mesh))

	for s := 0; s < nspin; s++ {
		for mi, eps := range mesh {
			for b := pw.Bmin; b <= pw.Bmax; b++ {
				w := tetrahedronWeights(ks, b, s, eps, true)
				for k := 0; k < nkpt; k++ {
					if w[k] == 0 {
						continue
					}
					lo, _ := pw.KWin.At(k, s)
					i := b - lo
					if i < 0 || i >= filtered.N1 {
						continue
					}
					for q := 0; q < d; q++ {
						amp := filtered.At(q, i, k, s)
						mag2 := real(amp)*real(amp) + imag(amp)*imag(amp)
						values.Set(q, s, mi, values.At(q, s, mi)+w[k]*mag2)
					}
				}
			}
		}
	}
	return &DOSResult{Mesh: mesh, Values: values}, nil
}
