package plant

import (
	"context"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/trajgen/internal/trajectory"
)

// tracer writes to trace with key 'trajgen.plant'
func tracer() tracing.Trace {
	return tracing.Select("trajgen.plant")
}

// Loop runs closed-loop evaluation against a simulated system.
type Loop struct {
	ev         *trajectory.Evaluator
	sys        System
	integrator *RK4
	controller Controller
	metrics    []Metric
}

func New(ev *trajectory.Evaluator, sys System, controller Controller) *Loop {
	return &Loop{
		ev:         ev,
		sys:        sys,
		integrator: NewRK4(),
		controller: controller,
		metrics:    make([]Metric, 0),
	}
}

func (l *Loop) AddMetric(m Metric) { l.metrics = append(l.metrics, m) }

// Run steps the loop from x0 until the evaluator reports StatusFinished, the
// configured duration elapses or ctx is done. Time is passed to the evaluator
// explicitly, so runs are reproducible.
func (l *Loop) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != l.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system wants %d",
			ErrDimensionMismatch, len(x0), l.sys.StateDim())
	}
	dim := l.sys.StateDim() / 2

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:      make([]float64, 0, steps+1),
		States:     make([]State, 0, steps+1),
		References: make([]trajectory.Reference, 0, steps+1),
		Controls:   make([]Control, 0, steps+1),
		Statuses:   make([]trajectory.Status, 0, steps+1),
		Metrics:    make(map[string]float64),
	}
	for _, m := range l.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	var ref trajectory.Reference

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		current := trajectory.Reference{Position: x[:dim], Velocity: x[dim:]}
		st, err := l.ev.EvaluateClosedLoop(&ref, current, t)
		if st.Failed() {
			return result, &StepError{Step: i, Time: t, Wrapped: err}
		}

		u := l.controller.Compute(x, ref, t)
		for _, m := range l.metrics {
			m.Observe(x, ref, u, t)
		}

		result.Times = append(result.Times, t)
		result.States = append(result.States, x.Clone())
		result.References = append(result.References, ref.Clone())
		result.Controls = append(result.Controls, u)
		result.Statuses = append(result.Statuses, st)

		if st == trajectory.StatusFinished {
			tracer().Infof("trajectory finished after %d steps at t=%.4f", i, t)
			result.Finished = true
			break
		}

		x = l.integrator.Step(l.sys, x, u, t, cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !x.IsValid() {
			return result, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}
	}

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
