package plo

import "gonum.org/v1/gonum/floats"

// Array3 is a flat, row-major, stride-indexed three-axis array of float64,
// generalizing blas64.General's {Rows, Cols, Stride, Data} storage scheme to
// a third axis. It backs enk[b,k,s] and occupy[b,k,s].
type Array3 struct {
	N0, N1, N2 int
	Data       []float64
}

// NewArray3 allocates a zeroed Array3 of the given shape.
func NewArray3(n0, n1, n2 int) *Array3 {
	if n0 <= 0 || n1 <= 0 || n2 <= 0 {
		panic("plo: non-positive array dimension")
	}
	return &Array3{N0: n0, N1: n1, N2: n2, Data: make([]float64, n0*n1*n2)}
}

func (a *Array3) index(i0, i1, i2 int) int {
	if i0 < 0 || i0 >= a.N0 || i1 < 0 || i1 >= a.N1 || i2 < 0 || i2 >= a.N2 {
		panic("plo: array3 index out of range")
	}
	return (i0*a.N1+i1)*a.N2 + i2
}

// At returns the element at (i0, i1, i2).
func (a *Array3) At(i0, i1, i2 int) float64 {
	return a.Data[a.index(i0, i1, i2)]
}

// Set assigns the element at (i0, i1, i2).
func (a *Array3) Set(i0, i1, i2 int, v float64) {
	a.Data[a.index(i0, i1, i2)] = v
}

// Max returns the largest value stored in a. Max panics if a is empty.
func (a *Array3) Max() float64 {
	return floats.Max(a.Data)
}

// Min returns the smallest value stored in a. Min panics if a is empty.
func (a *Array3) Min() float64 {
	return floats.Min(a.Data)
}

// CArray4 is a flat, row-major, stride-indexed four-axis array of
// complex128. It backs chipsi[p,b,k,s] and every rotated/filtered
// per-group projector array A[d,nbnd,nkpt,nspin] produced downstream.
type CArray4 struct {
	N0, N1, N2, N3 int
	Data           []complex128
}

// NewCArray4 allocates a zeroed CArray4 of the given shape.
func NewCArray4(n0, n1, n2, n3 int) *CArray4 {
	if n0 <= 0 || n1 <= 0 || n2 <= 0 || n3 <= 0 {
		panic("plo: non-positive array dimension")
	}
	return &CArray4{N0: n0, N1: n1, N2: n2, N3: n3, Data: make([]complex128, n0*n1*n2*n3)}
}

func (a *CArray4) index(i0, i1, i2, i3 int) int {
	if i0 < 0 || i0 >= a.N0 || i1 < 0 || i1 >= a.N1 || i2 < 0 || i2 >= a.N2 || i3 < 0 || i3 >= a.N3 {
		panic("plo: carray4 index out of range")
	}
	return ((i0*a.N1+i1)*a.N2+i2)*a.N3 + i3
}

// At returns the element at (i0, i1, i2, i3).
func (a *CArray4) At(i0, i1, i2, i3 int) complex128 {
	return a.Data[a.index(i0, i1, i2, i3)]
}

// Set assigns the element at (i0, i1, i2, i3).
func (a *CArray4) Set(i0, i1, i2, i3 int, v complex128) {
	a.Data[a.index(i0, i1, i2, i3)] = v
}

// Axis0 fills dst (len(dst) == N0) with a[:, i1, i2, i3] and returns it. If
// dst is nil a new slice is allocated.
func (a *CArray4) Axis0(i1, i2, i3 int, dst []complex128) []complex128 {
	if dst == nil {
		dst = make([]complex128, a.N0)
	}
	if len(dst) != a.N0 {
		panic("plo: axis0 length mismatch")
	}
	for i0 := range dst {
		dst[i0] = a.At(i0, i1, i2, i3)
	}
	return dst
}

// SetAxis0 writes src (len(src) == N0) into a[:, i1, i2, i3].
func (a *CArray4) SetAxis0(i1, i2, i3 int, src []complex128) {
	if len(src) != a.N0 {
		panic("plo: axis0 length mismatch")
	}
	for i0, v := range src {
		a.Set(i0, i1, i2, i3, v)
	}
}
