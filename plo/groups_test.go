package plo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseSiteIndex(t *testing.T) {
	cases := []struct {
		label string
		site  int
		ok    bool
	}{
		{"Fe1", 1, true},
		{"V12", 12, true},
		{"O", 0, false},
	}
	for _, c := range cases {
		site, ok := parseSiteIndex(c.label)
		if ok != c.ok || (ok && site != c.site) {
			t.Errorf("parseSiteIndex(%q) = (%d, %v), want (%d, %v)", c.label, site, ok, c.site, c.ok)
		}
	}
}

func TestResolveGroupsIdentityRotation(t *testing.T) {
	// Seed scenario S1: one s-shell group, T = I1.
	raw := []PrGroup{{Site: 1, L: 0, Pr: []int{0}}}
	cfg := Config{
		Windows:     []Bound{{Kind: BoundBand, Lo: 1, Hi: 1}},
		Atoms:       []string{"Fe1"},
		ShellLabels: []string{"s"},
		Nsite:       1,
	}

	groups, err := ResolveGroups(raw, cfg)
	if err != nil {
		t.Fatalf("ResolveGroups: %v", err)
	}
	g := groups[0]
	if !g.Corr || g.Shell != ShellS {
		t.Fatalf("group = %+v, want Corr=true Shell=s", g)
	}
	d, n := g.T.Dims()
	if d != 1 || n != 1 || g.T.At(0, 0) != 1 {
		t.Fatalf("T = %dx%d with T[0,0]=%v, want 1x1 identity", d, n, g.T.At(0, 0))
	}
}

func TestResolveGroupsDT2g(t *testing.T) {
	raw := []PrGroup{{Site: 1, L: 2, Pr: []int{0, 1, 2, 3, 4}}}
	cfg := Config{
		Windows:     []Bound{{Kind: BoundBand, Lo: 1, Hi: 10}},
		Atoms:       []string{"Fe1"},
		ShellLabels: []string{"d_t2g"},
		Nsite:       1,
	}
	groups, err := ResolveGroups(raw, cfg)
	if err != nil {
		t.Fatalf("ResolveGroups: %v", err)
	}
	d, n := groups[0].T.Dims()
	if d != 3 || n != 5 {
		t.Fatalf("T shape = %dx%d, want 3x5", d, n)
	}
}

func TestResolveGroupsMultiSiteMetadata(t *testing.T) {
	raw := []PrGroup{
		{Site: 1, L: 0, Pr: []int{0}},
		{Site: 2, L: 2, Pr: []int{1, 2, 3, 4, 5}},
	}
	cfg := Config{
		Windows:     []Bound{{Kind: BoundBand, Lo: 1, Hi: 10}},
		Atoms:       []string{"Fe1", "V2"},
		ShellLabels: []string{"s", "d_eg"},
		Nsite:       2,
	}

	groups, err := ResolveGroups(raw, cfg)
	if err != nil {
		t.Fatalf("ResolveGroups: %v", err)
	}

	want := []PrGroup{
		{Site: 1, L: 0, Corr: true, Shell: ShellS, Pr: []int{0}},
		{Site: 2, L: 2, Corr: true, Shell: ShellDEg, Pr: []int{1, 2, 3, 4, 5}},
	}
	// T is a *mat.CDense; shape/contents are checked by the shell-specific
	// tests above, so it's excluded from this structural comparison.
	if diff := cmp.Diff(want, groups, cmpopts.IgnoreFields(PrGroup{}, "T")); diff != "" {
		t.Errorf("resolved group metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveGroupsUnknownShell(t *testing.T) {
	raw := []PrGroup{{Site: 1, L: 2, Pr: []int{0, 1, 2, 3, 4}}}
	cfg := Config{
		Windows:     []Bound{{Kind: BoundBand, Lo: 1, Hi: 10}},
		Atoms:       []string{"Fe1"},
		ShellLabels: []string{"bogus"},
		Nsite:       1,
	}
	_, err := ResolveGroups(raw, cfg)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != UnknownShell {
		t.Fatalf("err = %v, want UnknownShell", err)
	}
}

func TestResolveGroupsConfigInconsistent(t *testing.T) {
	raw := []PrGroup{{Site: 1, L: 0, Pr: []int{0}}}
	cfg := Config{Nsite: 2, Atoms: []string{"Fe1"}, ShellLabels: []string{"s"}}
	_, err := ResolveGroups(raw, cfg)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ConfigInconsistent {
		t.Fatalf("err = %v, want ConfigInconsistent", err)
	}
}

func TestResolveGroupsShapeMismatch(t *testing.T) {
	raw := []PrGroup{{Site: 1, L: 2, Pr: []int{0, 1}}} // 2l+1=5 != 2
	cfg := Config{Nsite: 0}
	_, err := ResolveGroups(raw, cfg)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ShapeMismatch {
		t.Fatalf("err = %v, want ShapeMismatch", err)
	}
}
