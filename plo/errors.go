package plo

import "fmt"

// ErrorKind identifies the failing check behind a fatal pipeline error. The
// pipeline has no recovery semantics: every Kind is terminal (§7).
type ErrorKind int

const (
	// ShapeMismatch: input arrays disagree on nband, nkpt or nspin.
	ShapeMismatch ErrorKind = iota
	// UnknownShell: a configured or materialized shell label is not one of
	// s, p, d, f, d_t2g, d_eg.
	UnknownShell
	// BadWindow: a band/energy window is non-ordered or does not intersect
	// the available band energies.
	BadWindow
	// NonPositiveOverlap: Löwdin orthonormalisation hit a non-positive
	// overlap eigenvalue.
	NonPositiveOverlap
	// InsufficientBands: a window does not contain enough bands for the
	// group's orbital dimension.
	InsufficientBands
	// ConfigInconsistent: configuration lists disagree in length or cannot
	// be parsed (e.g. nsite != len(atoms)).
	ConfigInconsistent
)

func (k ErrorKind) String() string {
	switch k {
	case ShapeMismatch:
		return "ShapeMismatch"
	case UnknownShell:
		return "UnknownShell"
	case BadWindow:
		return "BadWindow"
	case NonPositiveOverlap:
		return "NonPositiveOverlap"
	case InsufficientBands:
		return "InsufficientBands"
	case ConfigInconsistent:
		return "ConfigInconsistent"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned across the public pipeline
// boundary. It carries the failing check's Kind alongside a one-line
// diagnostic, per spec §7 ("a single-line diagnostic identifying the
// failing check").
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("plo: %s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
