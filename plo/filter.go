package plo

// Filter copies, for each (k, s), the window-restricted band slice of a
// group's rotated amplitudes R into a zero-initialised, window-sized array
// (spec §4.5).
func Filter(R *CArray4, pw PrWindow) (*CArray4, error) {
	d, nkpt, nspin := R.N0, R.N2, R.N3
	if pw.KWin.Nk != nkpt || pw.KWin.Ns != nspin {
		return nil, newError(ShapeMismatch, "window shape (%d,%d) != R shape (%d,%d)", pw.KWin.Nk, pw.KWin.Ns, nkpt, nspin)
	}

	out := NewCArray4(d, pw.Nbnd, nkpt, nspin)
	for k := 0; k < nkpt; k++ {
		for s := 0; s < nspin; s++ {
			ib1, ib2 := pw.KWin.At(k, s)
			ib3 := ib2 - ib1 + 1
			if ib3 > pw.Nbnd {
				return nil, newError(ShapeMismatch, "k=%d s=%d: window width %d exceeds nbnd %d", k, s, ib3, pw.Nbnd)
			}
			for q := 0; q < d; q++ {
				for i := 0; i < ib3; i++ {
					out.Set(q, i, k, s, R.At(q, ib1+i, k, s))
				}
			}
		}
	}
	return out, nil
}
