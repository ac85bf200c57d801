package plo

import (
	"fmt"
	"io"
)

// WriteHamk writes the full-Hamiltonian text contract from spec §6: a
// header of (nproj, nkpt, nspin) — here nproj is the joint correlated
// subspace dimension D — followed by nspin*nkpt*nproj*nproj lines of
// "Re Im" pairs, innermost index the Hamiltonian row. full has shape
// (D, D, nkpt, nspin), as produced in joint mode by ComputeDiagnostics.
func WriteHamk(w io.Writer, full *CArray4) error {
	d, nkpt, nspin := full.N0, full.N2, full.N3
	if _, err := fmt.Fprintf(w, "%d\n%d\n%d\n", d, nkpt, nspin); err != nil {
		return err
	}
	for s := 0; s < nspin; s++ {
		for k := 0; k < nkpt; k++ {
			for j := 0; j < d; j++ {
				for i := 0; i < d; i++ {
					v := full.At(i, j, k, s)
					if _, err := fmt.Fprintf(w, "%.15g %.15g\n", real(v), imag(v)); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// WriteDOS writes one group's partial-DOS text contract from spec §6: a
// header of (nmesh, ndim, nspin) followed by nmesh lines of "eps" followed
// by ndim*nspin DOS values, spin outer, orbital inner.
func WriteDOS(w io.Writer, dos *DOSResult) error {
	ndim, nspin, nmesh := dos.Values.N0, dos.Values.N1, dos.Values.N2
	if _, err := fmt.Fprintf(w, "%d\n%d\n%d\n", nmesh, ndim, nspin); err != nil {
		return err
	}
	for m := 0; m < nmesh; m++ {
		if _, err := fmt.Fprintf(w, "%.15g", dos.Mesh[m]); err != nil {
			return err
		}
		for s := 0; s < nspin; s++ {
			for q := 0; q < ndim; q++ {
				if _, err := fmt.Fprintf(w, " %.15g", dos.Values.At(q, s, m)); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
