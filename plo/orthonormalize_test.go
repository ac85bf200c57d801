package plo

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// maxOverlapDeviation returns ‖M M^H − I‖∞ for a d x n CMatrix M.
func maxOverlapDeviation(m *mat.CDense) float64 {
	d, _ := m.Dims()
	o := mat.NewCDense(d, d, nil)
	o.Mul(m, m.H())
	var maxDev float64
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			want := complex(0.0, 0.0)
			if i == j {
				want = 1
			}
			diff := o.At(i, j) - want
			if v := math.Hypot(real(diff), imag(diff)); v > maxDev {
				maxDev = v
			}
		}
	}
	return maxDev
}

func TestOrthogonaliseProducesOrthonormalRows(t *testing.T) {
	m := mat.NewCDense(2, 3, nil)
	m.Set(0, 0, 1)
	m.Set(0, 1, 1i)
	m.Set(0, 2, 1+1i)
	m.Set(1, 0, 1i)
	m.Set(1, 1, 1)
	m.Set(1, 2, 1-1i)

	if err := orthogonalise(m); err != nil {
		t.Fatalf("orthogonalise: %v", err)
	}
	if dev := maxOverlapDeviation(m); dev > 1e-8 {
		t.Errorf("‖M M^H - I‖_inf = %v, want <= 1e-8", dev)
	}
}

func TestOrthonormalizePerGroup(t *testing.T) {
	d, nbnd := 2, 3
	F := NewCArray4(d, nbnd, 1, 1)
	vals := []complex128{1, 1i, 1 + 1i, 1i, 1, 1 - 1i}
	idx := 0
	for q := 0; q < d; q++ {
		for b := 0; b < nbnd; b++ {
			F.Set(q, b, 0, 0, vals[idx])
			idx++
		}
	}
	kw := newKWindow(1, 1)
	kw.set(0, 0, 0, nbnd-1)
	windows := []PrWindow{{KWin: kw, Bmin: 0, Bmax: nbnd - 1, Nbnd: nbnd}}

	if err := OrthonormalizePerGroup([]*CArray4{F}, windows); err != nil {
		t.Fatalf("OrthonormalizePerGroup: %v", err)
	}
	m := sliceToCDense(F, d, nbnd, 0, 0)
	if dev := maxOverlapDeviation(m); dev > 1e-8 {
		t.Errorf("‖M M^H - I‖_inf = %v, want <= 1e-8", dev)
	}
}

func TestOrthonormalizeJoint(t *testing.T) {
	// Seed scenario S4: two d-shell groups (d=5), identical integer
	// window, nbnd=12. Stacked 10 x ib3 matrix must end up row-orthonormal.
	d, nbnd := 5, 12
	groups := make([]*CArray4, 2)
	for gi := range groups {
		F := NewCArray4(d, nbnd, 1, 1)
		for q := 0; q < d; q++ {
			for b := 0; b < nbnd; b++ {
				// Deterministic, linearly independent fill: a dominant
				// entry in column gi*d+q makes the leading 10x10 block of
				// the stacked matrix diagonally dominant.
				re := float64((q+1)*(b+1)%7) - 3
				im := float64((q+2)*(b+3)%5) - 2
				if b == gi*d+q {
					re += 50
				}
				F.Set(q, b, 0, 0, complex(re, im))
			}
		}
		groups[gi] = F
	}
	kw := newKWindow(1, 1)
	kw.set(0, 0, 0, nbnd-1)
	windows := []PrWindow{{KWin: kw, Bmin: 0, Bmax: nbnd - 1, Nbnd: nbnd}}

	if err := OrthonormalizeJoint(groups, windows); err != nil {
		t.Fatalf("OrthonormalizeJoint: %v", err)
	}

	bigD := 2 * d
	m := mat.NewCDense(bigD, nbnd, nil)
	for gi, F := range groups {
		for q := 0; q < d; q++ {
			for b := 0; b < nbnd; b++ {
				m.Set(gi*d+q, b, F.At(q, b, 0, 0))
			}
		}
	}
	if dev := maxOverlapDeviation(m); dev > 1e-8 {
		t.Errorf("joint ‖M M^H - I‖_inf = %v, want <= 1e-8", dev)
	}
}
