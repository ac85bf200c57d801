package plo

import "gonum.org/v1/gonum/mat"

// ComputeDiagnostics computes overlap, density matrix and local Hamiltonian
// per group and spin, and — in joint mode — the full Hamiltonian, per spec
// §4.7. filtered must already be orthonormalised.
func ComputeDiagnostics(filtered []*CArray4, windows []PrWindow, ks *KSData, joint bool) (*Diagnostics, error) {
	if len(filtered) == 0 {
		return &Diagnostics{}, nil
	}
	nkpt, nspin := filtered[0].N2, filtered[0].N3
	sigma := 1.0
	if nspin == 1 {
		sigma = 2.0
	}

	diag := &Diagnostics{
		Overlap:  make([][]*mat.CDense, len(filtered)),
		Density:  make([][]*mat.CDense, len(filtered)),
		LocalHam: make([][]*mat.CDense, len(filtered)),
	}

	for gi, F := range filtered {
		pw := windows[gi]
		d := F.N0
		diag.Overlap[gi] = make([]*mat.CDense, nspin)
		diag.Density[gi] = make([]*mat.CDense, nspin)
		diag.LocalHam[gi] = make([]*mat.CDense, nspin)

		for s := 0; s < nspin; s++ {
			ovlp := mat.NewCDense(d, d, nil)
			ham := mat.NewCDense(d, d, nil)
			var dm *mat.CDense
			if ks.Occupy != nil {
				dm = mat.NewCDense(d, d, nil)
			}

			// Deterministic reduction order: s outer, k inner, ascending
			// (spec §5).
			for k := 0; k < nkpt; k++ {
				lo, hi := pw.KWin.At(k, s)
				ib3 := hi - lo + 1
				wk := ks.Weight[k] / float64(nkpt)

				a := sliceToCDense(F, d, ib3, k, s)
				aH := a.H()

				prod := mat.NewCDense(d, d, nil)
				prod.Mul(a, aH)
				addRealScaled(ovlp, prod, wk)

				if dm != nil {
					occDiag := mat.NewCDense(ib3, ib3, nil)
					for i := 0; i < ib3; i++ {
						occDiag.Set(i, i, complex(ks.Occupy.At(lo+i, k, s), 0))
					}
					tmp := mat.NewCDense(d, ib3, nil)
					tmp.Mul(a, occDiag)
					prod2 := mat.NewCDense(d, d, nil)
					prod2.Mul(tmp, aH)
					addRealScaled(dm, prod2, wk*sigma)
				}

				enDiag := mat.NewCDense(ib3, ib3, nil)
				for i := 0; i < ib3; i++ {
					enDiag.Set(i, i, complex(ks.Enk.At(lo+i, k, s), 0))
				}
				tmp3 := mat.NewCDense(d, ib3, nil)
				tmp3.Mul(a, enDiag)
				prod3 := mat.NewCDense(d, d, nil)
				prod3.Mul(tmp3, aH)
				addScaled(ham, prod3, complex(wk, 0))
			}

			diag.Overlap[gi][s] = ovlp
			diag.Density[gi][s] = dm
			diag.LocalHam[gi][s] = ham
		}
	}

	if joint {
		full, err := computeFullHamiltonian(filtered, windows, ks)
		if err != nil {
			return nil, err
		}
		diag.FullHam = full
	}
	return diag, nil
}

// computeFullHamiltonian builds H[:,:,k,s] over the joint stacked
// projectors, per group block, without summing over k (spec §4.7).
func computeFullHamiltonian(filtered []*CArray4, windows []PrWindow, ks *KSData) (*CArray4, error) {
	nkpt, nspin := filtered[0].N2, filtered[0].N3

	blocks := make([]int, len(filtered)+1)
	for gi, F := range filtered {
		blocks[gi+1] = blocks[gi] + F.N0
	}
	bigD := blocks[len(filtered)]
	pw := windows[0]

	full := NewCArray4(bigD, bigD, nkpt, nspin)
	for s := 0; s < nspin; s++ {
		for k := 0; k < nkpt; k++ {
			lo, hi := pw.KWin.At(k, s)
			ib3 := hi - lo + 1
			wk := complex(ks.Weight[k]/float64(nkpt), 0)

			m := mat.NewCDense(bigD, ib3, nil)
			for gi, F := range filtered {
				for q := 0; q < F.N0; q++ {
					for i := 0; i < ib3; i++ {
						m.Set(blocks[gi]+q, i, F.At(q, i, k, s))
					}
				}
			}

			enDiag := mat.NewCDense(ib3, ib3, nil)
			for i := 0; i < ib3; i++ {
				enDiag.Set(i, i, complex(ks.Enk.At(lo+i, k, s), 0))
			}
			tmp := mat.NewCDense(bigD, ib3, nil)
			tmp.Mul(m, enDiag)
			h := mat.NewCDense(bigD, bigD, nil)
			h.Mul(tmp, m.H())

			for i := 0; i < bigD; i++ {
				for j := 0; j < bigD; j++ {
					full.Set(i, j, k, s, wk*h.At(i, j))
				}
			}
		}
	}
	return full, nil
}

func addRealScaled(dst, src *mat.CDense, w float64) {
	r, c := dst.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, dst.At(i, j)+complex(w*real(src.At(i, j)), 0))
		}
	}
}

func addScaled(dst, src *mat.CDense, w complex128) {
	r, c := dst.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, dst.At(i, j)+w*src.At(i, j))
		}
	}
}
