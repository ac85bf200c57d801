package plo

// ResolveWindows computes the per-group, per-(k,s) band window from
// configuration and band energies (spec §4.3).
func ResolveWindows(groups []PrGroup, enk *Array3, windows []Bound) ([]PrWindow, error) {
	nband, nkpt, nspin := enk.N0, enk.N1, enk.N2

	nwin := len(windows)
	if nwin != 1 && nwin != len(groups) {
		return nil, newError(BadWindow,
			"window list has length %d, want 1 or %d", len(windows), len(groups))
	}

	out := make([]PrWindow, len(groups))
	for gi := range groups {
		bw := windows[0]
		if nwin == len(groups) {
			bw = windows[gi]
		}
		// A band window may select a single band (lo == hi); an energy
		// window must have hi > lo.
		if bw.Hi < bw.Lo || (bw.Kind == BoundEnergy && bw.Hi == bw.Lo) {
			return nil, newError(BadWindow, "group %d: window [%v,%v] is not ordered", gi, bw.Lo, bw.Hi)
		}

		kw := newKWindow(nkpt, nspin)
		switch bw.Kind {
		case BoundBand:
			lo, hi := int(bw.Lo), int(bw.Hi)
			if lo < 1 || hi > nband {
				return nil, newError(BadWindow,
					"group %d: band window [%d,%d] out of range [1,%d]", gi, lo, hi, nband)
			}
			for k := 0; k < nkpt; k++ {
				for s := 0; s < nspin; s++ {
					kw.set(k, s, lo-1, hi-1)
				}
			}
		case BoundEnergy:
			emin, emax := enk.Min(), enk.Max()
			if bw.Hi < emin || bw.Lo > emax {
				return nil, newError(BadWindow,
					"group %d: energy window [%v,%v] does not intersect [%v,%v]", gi, bw.Lo, bw.Hi, emin, emax)
			}
			for k := 0; k < nkpt; k++ {
				for s := 0; s < nspin; s++ {
					lo, hi, err := energyBandBounds(enk, k, s, bw.Lo, bw.Hi)
					if err != nil {
						return nil, err
					}
					kw.set(k, s, lo, hi)
				}
			}
		default:
			panic("plo: unreachable bound kind")
		}

		bmin, bmax := kw.Lo[0], kw.Hi[0]
		for i := 1; i < len(kw.Lo); i++ {
			if kw.Lo[i] < bmin {
				bmin = kw.Lo[i]
			}
			if kw.Hi[i] > bmax {
				bmax = kw.Hi[i]
			}
		}
		out[gi] = PrWindow{
			BWin: bw,
			KWin: kw,
			Bmin: bmin,
			Bmax: bmax,
			Nbnd: bmax - bmin + 1,
		}
	}
	return out, nil
}

// energyBandBounds finds, for a single (k, s) slice, the smallest band index
// with enk >= lo and the largest band index with enk <= hi, both zero-based.
func energyBandBounds(enk *Array3, k, s int, lo, hi float64) (loIdx, hiIdx int, err error) {
	loIdx, hiIdx = -1, -1
	for b := 0; b < enk.N0; b++ {
		e := enk.At(b, k, s)
		if loIdx == -1 && e >= lo {
			loIdx = b
		}
		if e <= hi {
			hiIdx = b
		}
	}
	if loIdx == -1 || hiIdx == -1 || hiIdx < loIdx {
		return 0, 0, newError(BadWindow,
			"k=%d s=%d: energy window [%v,%v] selects no consistent band range", k, s, lo, hi)
	}
	return loIdx, hiIdx, nil
}

// Mode reports whether orthonormalisation runs jointly across all groups
// (a single shared window, spec §4.6) or independently per group.
func Mode(windows []Bound) bool {
	return len(windows) == 1
}
