package plo

import "testing"

func TestFilterCopiesWindow(t *testing.T) {
	R := NewCArray4(1, 4, 1, 1)
	for b := 0; b < 4; b++ {
		R.Set(0, b, 0, 0, complex(float64(b), 0))
	}
	kw := newKWindow(1, 1)
	kw.set(0, 0, 1, 2)
	pw := PrWindow{KWin: kw, Bmin: 1, Bmax: 2, Nbnd: 2}

	F, err := Filter(R, pw)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if F.N1 != 2 {
		t.Fatalf("F.N1 = %d, want 2", F.N1)
	}
	if got := F.At(0, 0, 0, 0); got != 1 {
		t.Errorf("F[0,0,0,0] = %v, want 1", got)
	}
	if got := F.At(0, 1, 0, 0); got != 2 {
		t.Errorf("F[0,1,0,0] = %v, want 2", got)
	}
}
