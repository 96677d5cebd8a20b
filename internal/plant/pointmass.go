package plant

// PointMass is a damped double integrator on every axis. The control input
// is a force per axis.
type PointMass struct {
	Dim     int
	Mass    float64
	Damping float64
}

func NewPointMass(dim int) *PointMass {
	return &PointMass{
		Dim:     dim,
		Mass:    1.0,
		Damping: 0.1,
	}
}

func (p *PointMass) StateDim() int   { return 2 * p.Dim }
func (p *PointMass) ControlDim() int { return p.Dim }

func (p *PointMass) Derive(x State, u Control, t float64) State {
	dx := make(State, 2*p.Dim)
	for i := 0; i < p.Dim; i++ {
		vel := x[p.Dim+i]
		force := 0.0
		if i < len(u) {
			force = u[i]
		}
		dx[i] = vel
		dx[p.Dim+i] = (force - p.Damping*vel) / p.Mass
	}
	return dx
}
