// Package optim searches parameter grids for the lowest objective value.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"
)

func tracer() tracing.Trace {
	return tracing.Select("trajgen.optim")
}

var ErrNoCandidates = errors.New("optim: no candidate could be evaluated")

// Objective scores one parameter combination; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type Candidate struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Workers    int
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameter names for %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges, Workers: runtime.GOMAXPROCS(0)}, nil
}

// Candidates enumerates the grid, last parameter varying fastest.
func (g *GridSearch) Candidates() []map[string]float64 {
	var out []map[string]float64
	g.enumerate(0, make(map[string]float64), &out)
	return out
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*out = append(*out, params)
		return
	}
	for _, val := range g.ranges[depth] {
		current[g.paramNames[depth]] = val
		g.enumerate(depth+1, current, out)
	}
}

// Search evaluates every candidate concurrently and returns the best one.
// Failing candidates are skipped; ties go to the earlier candidate.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (Candidate, []Candidate, error) {
	params := g.Candidates()
	results := make([]Candidate, len(params))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(max(g.Workers, 1))
	for i, p := range params {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := objective(gctx, p)
			results[i] = Candidate{Params: p, Value: v, Err: err}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Candidate{}, results, err
	}

	best := Candidate{Value: math.Inf(1)}
	found := false
	for _, c := range results {
		if c.Err != nil {
			tracer().Debugf("candidate %v failed: %v", c.Params, c.Err)
			continue
		}
		if !found || c.Value < best.Value {
			best, found = c, true
		}
	}
	if !found {
		return Candidate{}, results, ErrNoCandidates
	}
	tracer().Infof("best of %d candidates: %v = %.6g", len(results), best.Params, best.Value)
	return best, results, nil
}
