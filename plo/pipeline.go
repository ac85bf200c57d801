package plo

import "math"

// Run executes the full PLO pipeline (spec §2): Fermi calibration, group and
// window resolution, rotation, filtering, Löwdin orthonormalisation and,
// optionally, diagnostics. It is a pure function of (ks, cfg): ks is never
// mutated (Run calibrates a private copy of Enk), and every failure is
// returned as an *Error naming the failing check (spec §4.9, §7).
func Run(ks KSData, cfg Config) (*Result, error) {
	if err := checkShapes(ks); err != nil {
		return nil, err
	}

	enk := cloneArray3(ks.Enk)
	ApplyFermiCalibration(enk, ks.Fermi)
	ks.Enk = enk

	groups, err := ResolveGroups(ks.Groups, cfg)
	if err != nil {
		return nil, err
	}

	windows, err := ResolveWindows(groups, enk, cfg.Windows)
	if err != nil {
		return nil, err
	}

	filtered := make([]*CArray4, len(groups))
	for gi, g := range groups {
		rotated, err := Rotate(ks.Chipsi, g)
		if err != nil {
			return nil, err
		}
		f, err := Filter(rotated, windows[gi])
		if err != nil {
			return nil, err
		}
		filtered[gi] = f
	}

	joint := Mode(cfg.Windows)
	if joint {
		if err := OrthonormalizeJoint(filtered, windows); err != nil {
			return nil, err
		}
	} else {
		if err := OrthonormalizePerGroup(filtered, windows); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Groups:     groups,
		Windows:    windows,
		Projectors: filtered,
	}

	if cfg.Diagnostics {
		diag, err := ComputeDiagnostics(filtered, windows, &ks, joint)
		if err != nil {
			return nil, err
		}
		if cfg.Smear == SmearTetra && ks.Itet != nil {
			diag.DOS = make([]*DOSResult, len(filtered))
			for gi, f := range filtered {
				d, err := PartialDOS(f, windows[gi], &ks)
				if err != nil {
					return nil, err
				}
				d.Group = gi
				diag.DOS[gi] = d
			}
		}
		result.Diagnostics = diag
	}

	return result, nil
}

func checkShapes(ks KSData) error {
	nband, nkpt, nspin := ks.Enk.N0, ks.Enk.N1, ks.Enk.N2
	if ks.Chipsi.N1 != nband || ks.Chipsi.N2 != nkpt || ks.Chipsi.N3 != nspin {
		return newError(ShapeMismatch,
			"chipsi shape (%d,%d,%d,%d) inconsistent with enk (%d,%d,%d)",
			ks.Chipsi.N0, ks.Chipsi.N1, ks.Chipsi.N2, ks.Chipsi.N3, nband, nkpt, nspin)
	}
	if len(ks.Weight) != nkpt {
		return newError(ShapeMismatch, "len(weight)=%d != nkpt=%d", len(ks.Weight), nkpt)
	}
	var sum float64
	for _, w := range ks.Weight {
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return newError(ShapeMismatch, "weights sum to %v, want 1", sum)
	}
	if ks.Occupy != nil {
		if ks.Occupy.N0 != nband || ks.Occupy.N1 != nkpt || ks.Occupy.N2 != nspin {
			return newError(ShapeMismatch, "occupy shape inconsistent with enk")
		}
	}
	return nil
}

func cloneArray3(a *Array3) *Array3 {
	out := &Array3{N0: a.N0, N1: a.N1, N2: a.N2, Data: make([]float64, len(a.Data))}
	copy(out.Data, a.Data)
	return out
}
