package plo

// ApplyFermiCalibration shifts enk in place so that the Fermi level sits at
// zero energy: enk[b,k,s] -= fermi. It is idempotent only for the pair
// (enk, fermi=0) afterward, and has no failure mode of its own — shape
// consistency is enforced once, at the top of Run.
func ApplyFermiCalibration(enk *Array3, fermi float64) {
	if fermi == 0 {
		return
	}
	for i, v := range enk.Data {
		enk.Data[i] = v - fermi
	}
}
