package shape

// Profile maps normalized segment time tau in [0, 1] to normalized progress s
// and its first and second derivatives with respect to tau.
type Profile func(tau float64) (s, ds, dds float64)

func linearProfile(tau float64) (float64, float64, float64) {
	return tau, 1, 0
}

// minJerkProfile is 10τ³ - 15τ⁴ + 6τ⁵.
func minJerkProfile(tau float64) (float64, float64, float64) {
	t2 := tau * tau
	t3 := t2 * tau
	s := t3 * (10 - 15*tau + 6*t2)
	ds := 30 * t2 * (1 - 2*tau + t2)
	dds := 60 * tau * (1 - 3*tau + 2*t2)
	return s, ds, dds
}
