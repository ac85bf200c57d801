package plo

import "gonum.org/v1/gonum/mat"

// Rotate applies group g's transformation T to chipsi, reducing the raw
// projector axis to the group's d-dimensional sub-basis (spec §4.4):
//
//	R[:,b,k,s] = T * chipsi[p1:p2, b, k, s]
//
// The returned array has shape (d, nband, nkpt, nspin).
func Rotate(chipsi *CArray4, g PrGroup) (*CArray4, error) {
	d, n := g.T.Dims()
	if n != len(g.Pr) {
		return nil, newError(ShapeMismatch, "group T has %d columns, want %d", n, len(g.Pr))
	}
	nband, nkpt, nspin := chipsi.N1, chipsi.N2, chipsi.N3
	if nband < d {
		return nil, newError(InsufficientBands, "nband=%d < d=%d", nband, d)
	}

	out := NewCArray4(d, nband, nkpt, nspin)

	x := mat.NewCDense(n, 1, make([]complex128, n))
	y := mat.NewCDense(d, 1, make([]complex128, d))
	buf := make([]complex128, n)
	for b := 0; b < nband; b++ {
		for k := 0; k < nkpt; k++ {
			for s := 0; s < nspin; s++ {
				for i, p := range g.Pr {
					buf[i] = chipsi.At(p, b, k, s)
				}
				for i, v := range buf {
					x.Set(i, 0, v)
				}
				y.Mul(g.T, x)
				for i := 0; i < d; i++ {
					out.Set(i, b, k, s, y.At(i, 0))
				}
			}
		}
	}
	return out, nil
}
