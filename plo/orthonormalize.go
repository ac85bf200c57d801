package plo

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// orthogonalise Löwdin-orthonormalises M (d x n) in place: M <- S * M where
// S = (M M^H)^(-1/2) (spec §4.6). It requires every eigenvalue of the
// overlap O = M M^H to be strictly positive.
func orthogonalise(m *mat.CDense) error {
	d, _ := m.Dims()

	overlap := mat.NewCDense(d, d, nil)
	overlap.Mul(m, m.H())

	vals, vecs, err := hermitianEigen(overlap)
	if err != nil {
		return err
	}
	for _, v := range vals {
		if v <= 0 {
			return newError(NonPositiveOverlap, "overlap eigenvalue %v is not strictly positive", v)
		}
	}

	diag := mat.NewCDense(d, d, nil)
	for i, v := range vals {
		diag.Set(i, i, complex(1/math.Sqrt(v), 0))
	}
	tmp := mat.NewCDense(d, d, nil)
	tmp.Mul(vecs, diag)
	invSqrt := mat.NewCDense(d, d, nil)
	invSqrt.Mul(tmp, vecs.H())

	m.Mul(invSqrt, m)
	return nil
}

// OrthonormalizePerGroup Löwdin-orthonormalises each group's filtered
// projectors independently, used when group windows differ (spec §4.6).
func OrthonormalizePerGroup(filtered []*CArray4, windows []PrWindow) error {
	for gi, F := range filtered {
		pw := windows[gi]
		d := F.N0
		nkpt, nspin := F.N2, F.N3
		for s := 0; s < nspin; s++ {
			for k := 0; k < nkpt; k++ {
				lo, hi := pw.KWin.At(k, s)
				ib3 := hi - lo + 1
				if ib3 < d {
					return newError(InsufficientBands, "group %d k=%d s=%d: window width %d < d=%d", gi, k, s, ib3, d)
				}
				m := sliceToCDense(F, d, ib3, k, s)
				if err := orthogonalise(m); err != nil {
					return err
				}
				cDenseToSlice(m, F, d, ib3, k, s)
			}
		}
	}
	return nil
}

// OrthonormalizeJoint Löwdin-orthonormalises the vertical stack of all
// groups' filtered projectors jointly, used when a single window is shared
// across all groups (spec §4.6).
func OrthonormalizeJoint(filtered []*CArray4, windows []PrWindow) error {
	if len(filtered) == 0 {
		return nil
	}
	nkpt, nspin := filtered[0].N2, filtered[0].N3

	blocks := make([]int, len(filtered)+1)
	for gi, F := range filtered {
		blocks[gi+1] = blocks[gi] + F.N0
	}
	bigD := blocks[len(filtered)]

	for s := 0; s < nspin; s++ {
		for k := 0; k < nkpt; k++ {
			lo, hi := windows[0].KWin.At(k, s)
			ib3 := hi - lo + 1
			if ib3 < bigD {
				return newError(InsufficientBands, "joint k=%d s=%d: window width %d < D=%d", k, s, ib3, bigD)
			}

			m := mat.NewCDense(bigD, ib3, nil)
			for gi, F := range filtered {
				for q := 0; q < F.N0; q++ {
					for i := 0; i < ib3; i++ {
						m.Set(blocks[gi]+q, i, F.At(q, i, k, s))
					}
				}
			}

			if err := orthogonalise(m); err != nil {
				return err
			}

			for gi, F := range filtered {
				for q := 0; q < F.N0; q++ {
					for i := 0; i < ib3; i++ {
						F.Set(q, i, k, s, m.At(blocks[gi]+q, i))
					}
				}
			}
		}
	}
	return nil
}

func sliceToCDense(F *CArray4, d, n, k, s int) *mat.CDense {
	m := mat.NewCDense(d, n, nil)
	for q := 0; q < d; q++ {
		for i := 0; i < n; i++ {
			m.Set(q, i, F.At(q, i, k, s))
		}
	}
	return m
}

func cDenseToSlice(m *mat.CDense, F *CArray4, d, n, k, s int) {
	for q := 0; q < d; q++ {
		for i := 0; i < n; i++ {
			F.Set(q, i, k, s, m.At(q, i))
		}
	}
}
