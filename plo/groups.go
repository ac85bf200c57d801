package plo

import (
	"strings"

	"gonum.org/v1/gonum/mat"
)

// shellTransform materializes the shell -> T table of spec §4.2. Rows are
// one-based in the spec prose; the selector matrices below are translated
// to zero-based Go indexing.
func shellTransform(s Shell) *mat.CDense {
	switch s {
	case ShellS:
		return identityC(1)
	case ShellP:
		return identityC(3)
	case ShellD:
		return identityC(5)
	case ShellF:
		return identityC(7)
	case ShellDT2g:
		// 3x5 selector with ones at one-based (1,1),(2,2),(3,4).
		t := mat.NewCDense(3, 5, nil)
		t.Set(0, 0, 1)
		t.Set(1, 1, 1)
		t.Set(2, 3, 1)
		return t
	case ShellDEg:
		// 2x5 selector with ones at one-based (1,3),(2,5). This is the
		// d_eg mapping spec §9 flags as TO_BE_CHECK in the source;
		// implemented unchanged, see DESIGN.md "Open Questions resolved".
		t := mat.NewCDense(2, 5, nil)
		t.Set(0, 2, 1)
		t.Set(1, 4, 1)
		return t
	default:
		panic("plo: unreachable shell")
	}
}

func identityC(n int) *mat.CDense {
	t := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		t.Set(i, i, 1)
	}
	return t
}

// parseSiteIndex extracts the maximal trailing run of ASCII digits from an
// atom label (e.g. "Fe1" -> 1). It returns ok=false if the label carries no
// trailing digits.
func parseSiteIndex(label string) (site int, ok bool) {
	i := len(label)
	for i > 0 && label[i-1] >= '0' && label[i-1] <= '9' {
		i--
	}
	digits := label[i:]
	if digits == "" {
		return 0, false
	}
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
	}
	return n, true
}

// ResolveGroups merges configuration with the raw projector groups to
// produce the final group list (spec §4.2). It does not mutate raw.
func ResolveGroups(raw []PrGroup, cfg Config) ([]PrGroup, error) {
	if cfg.Nsite != len(cfg.Atoms) || cfg.Nsite != len(cfg.ShellLabels) {
		return nil, newError(ConfigInconsistent,
			"nsite=%d but len(atoms)=%d, len(shell)=%d", cfg.Nsite, len(cfg.Atoms), len(cfg.ShellLabels))
	}

	type site struct {
		site  int
		l     int
		shell Shell
	}
	sites := make([]site, 0, cfg.Nsite)
	for i := 0; i < cfg.Nsite; i++ {
		s, ok := parseSiteIndex(cfg.Atoms[i])
		if !ok {
			return nil, newError(ConfigInconsistent, "atoms[%d]=%q has no parseable site index", i, cfg.Atoms[i])
		}
		shell, ok := parseShell(strings.TrimSpace(cfg.ShellLabels[i]))
		if !ok {
			return nil, newError(UnknownShell, "shell[%d]=%q is not one of s,p,d,f,d_t2g,d_eg", i, cfg.ShellLabels[i])
		}
		sites = append(sites, site{site: s, l: shellL(shell), shell: shell})
	}

	groups := make([]PrGroup, len(raw))
	copy(groups, raw)
	for gi := range groups {
		g := &groups[gi]
		if len(g.Pr) != 2*g.L+1 {
			return nil, newError(ShapeMismatch,
				"group %d: 2l+1=%d but len(Pr)=%d", gi, 2*g.L+1, len(g.Pr))
		}

		g.Corr = false
		g.Shell = defaultShell(g.L)
		for _, s := range sites {
			if s.site == g.Site && s.l == g.L {
				g.Corr = true
				g.Shell = s.shell
				break
			}
		}

		T := shellTransform(g.Shell)
		d, n := T.Dims()
		if d != shellDim(g.Shell) || n != 2*g.L+1 {
			return nil, newError(ShapeMismatch,
				"group %d: shell %s transform is %dx%d, want %dx%d", gi, g.Shell, d, n, shellDim(g.Shell), 2*g.L+1)
		}
		g.T = T
	}
	return groups, nil
}
