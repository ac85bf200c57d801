package plo

import "gonum.org/v1/gonum/mat"

// hermitianEigen computes the eigenvalues (ascending) and an orthonormal
// eigenvector basis of a small Hermitian complex matrix H.
//
// gonum.org/v1/gonum/mat ships EigenSym for real-symmetric matrices but has
// no Hermitian-complex solver in this snapshot. A Hermitian H = A + iB (A
// symmetric, B skew-symmetric) has the same spectrum, each eigenvalue
// doubled, as the real symmetric embedding
//
//	M = [[A, -B], [B, A]]
//
// and its real eigenvectors (x, y) recombine pairwise into complex
// eigenvectors c = x + iy of H: multiplying c by i produces the partner
// real eigenvector (-y, x), so taking every other eigenvector after an
// ascending sort yields exactly one representative per H-eigenvalue. This
// lets Löwdin orthonormalisation (orthonormalize.go) reuse mat.EigenSym and
// mat.Dense.EigenvectorsSym directly instead of a hand-rolled complex
// solver.
func hermitianEigen(h *mat.CDense) (vals []float64, vecs *mat.CDense, err error) {
	n, nc := h.Dims()
	if n != nc {
		return nil, nil, newError(ShapeMismatch, "hermitianEigen: %dx%d is not square", n, nc)
	}

	embed := make([]float64, 4*n*n)
	set := func(i, j int, v float64) { embed[i*2*n+j] = v }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			z := h.At(i, j)
			a, b := real(z), imag(z)
			set(i, j, a)
			set(i, n+j, -b)
			set(n+i, j, b)
			set(n+i, n+j, a)
		}
	}
	sym := mat.NewSymDense(2*n, embed)

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, nil, newError(NonPositiveOverlap, "hermitianEigen: eigendecomposition did not converge")
	}
	allVals := eig.Values(nil)

	var vectors mat.Dense
	vectors.EigenvectorsSym(&eig)

	vals = make([]float64, n)
	vecs = mat.NewCDense(n, n, nil)
	for j := 0; j < n; j++ {
		vals[j] = allVals[2*j]
		for i := 0; i < n; i++ {
			re := vectors.At(i, 2*j)
			im := vectors.At(n+i, 2*j)
			vecs.Set(i, j, complex(re, im))
		}
	}
	return vals, vecs, nil
}
