package trajectory

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajgen/internal/waypoint"
)

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time          { return f.now }
func (f *fakeTime) Advance(d time.Duration) { f.now = f.now.Add(d) }

// rampGenerator writes t into every position component and finishes at
// finishAt.
type rampGenerator struct {
	finishAt float64
	times    []float64
	currents []Reference
}

func (g *rampGenerator) Generate(wps *waypoint.Set, t float64, desired *Reference) (Status, error) {
	g.times = append(g.times, t)
	for i := range desired.Position {
		desired.Position[i] = t
		desired.Velocity[i] = 1
	}
	if t >= g.finishAt {
		return StatusFinished, nil
	}
	return StatusRunning, nil
}

func (g *rampGenerator) GenerateClosedLoop(wps *waypoint.Set, t float64, current Reference, desired *Reference) (Status, error) {
	g.currents = append(g.currents, current.Clone())
	return g.Generate(wps, t, desired)
}

// openOnly supports open-loop evaluation only.
type openOnly struct {
	Unimplemented
}

func (openOnly) Generate(wps *waypoint.Set, t float64, desired *Reference) (Status, error) {
	return StatusOK, nil
}

// flakyGenerator fails its first failures calls and then delegates to a
// ramp.
type flakyGenerator struct {
	rampGenerator
	failures int
}

func (g *flakyGenerator) Generate(wps *waypoint.Set, t float64, desired *Reference) (Status, error) {
	if g.failures > 0 {
		g.failures--
		return StatusError, errors.New("sensor not ready")
	}
	return g.rampGenerator.Generate(wps, t, desired)
}

func threeWaypoints() *waypoint.Set {
	wps, err := waypoint.NewSetFromTimedVectors(
		[]waypoint.Vector{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}},
		[]float64{0.0, 1.1, 2.1},
	)
	Expect(err).NotTo(HaveOccurred())
	return wps
}

var _ = Describe("Evaluator", func() {
	var (
		clk *fakeTime
		gen *rampGenerator
		ev  *Evaluator
		ref Reference
	)

	BeforeEach(func() {
		clk = &fakeTime{now: time.Unix(1000, 0)}
		gen = &rampGenerator{finishAt: 1.0}
		ev = New(gen, threeWaypoints(), WithNow(clk.Now))
		ref = Reference{}
	})

	Context("without a generator", func() {
		It("reports an error and leaves the outputs untouched", func() {
			base := New(nil, threeWaypoints(), WithNow(clk.Now))
			ref = Reference{Position: waypoint.Vector{7, 7, 7}}

			st, err := base.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusError))
			Expect(err).To(MatchError(ErrNotImplemented))
			Expect(ref.Position).To(Equal(waypoint.Vector{7, 7, 7}))
			Expect(ref.Velocity).To(BeNil())

			st, err = base.EvaluateClosedLoop(&ref, NewReference(3), 0.5)
			Expect(st).To(Equal(StatusError))
			Expect(err).To(MatchError(ErrNotImplemented))
			Expect(ref.Position).To(Equal(waypoint.Vector{7, 7, 7}))
		})

		It("treats an unimplemented hook as an explicit error", func() {
			partial := New(openOnly{}, threeWaypoints())

			st, err := partial.Evaluate(&ref, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(st).To(Equal(StatusOK))

			st, err = partial.EvaluateClosedLoop(&ref, Reference{}, 0)
			Expect(st).To(Equal(StatusError))
			Expect(err).To(MatchError(ErrNotImplemented))
		})
	})

	Context("driven by the internal clock", func() {
		It("starts at zero and reports START", func() {
			Expect(ev.State()).To(Equal(ClockArmed))

			st, err := ev.Evaluate(&ref, UseInternalClock)
			Expect(err).NotTo(HaveOccurred())
			Expect(st).To(Equal(StatusStart))
			Expect(ev.LastTime()).To(BeNumerically("==", 0))
			Expect(ev.State()).To(Equal(ClockRunning))
			Expect(ref.Position).To(Equal(waypoint.Vector{0, 0, 0}))
		})

		It("reports RUNNING with increasing elapsed time", func() {
			_, _ = ev.Evaluate(&ref, UseInternalClock)

			clk.Advance(250 * time.Millisecond)
			st, _ := ev.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusRunning))
			first := ev.LastTime()
			Expect(first).To(BeNumerically("~", 0.25, 1e-9))

			clk.Advance(250 * time.Millisecond)
			st, _ = ev.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusRunning))
			Expect(ev.LastTime()).To(BeNumerically(">", first))
			Expect(ref.Position[0]).To(BeNumerically("~", 0.5, 1e-9))
		})

		It("re-arms after FINISHED and restarts from zero", func() {
			_, _ = ev.Evaluate(&ref, UseInternalClock)
			clk.Advance(1500 * time.Millisecond)

			st, _ := ev.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusFinished))
			Expect(ev.State()).To(Equal(ClockFinished))

			clk.Advance(10 * time.Second)
			st, _ = ev.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusStart))
			Expect(ev.LastTime()).To(BeNumerically("==", 0))
			Expect(gen.times).To(Equal([]float64{0, 1.5, 0}))
		})

		It("keeps the waypoints across a restart", func() {
			_, _ = ev.Evaluate(&ref, 2.0)
			wps, st, err := ev.Waypoints()
			Expect(err).NotTo(HaveOccurred())
			Expect(st).To(Equal(StatusOK))
			Expect(wps.Len()).To(Equal(3))
		})

		It("re-arms when the waypoints are replaced", func() {
			_, _ = ev.Evaluate(&ref, UseInternalClock)
			clk.Advance(300 * time.Millisecond)
			_, _ = ev.Evaluate(&ref, UseInternalClock)

			ev.SetWaypoints(threeWaypoints())
			Expect(ev.State()).To(Equal(ClockArmed))

			clk.Advance(300 * time.Millisecond)
			st, _ := ev.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusStart))
			Expect(ev.LastTime()).To(BeNumerically("==", 0))
		})

		It("keeps START for the first successful tick after a failed one", func() {
			flaky := New(&flakyGenerator{rampGenerator: rampGenerator{finishAt: 1.0}, failures: 1},
				threeWaypoints(), WithNow(clk.Now))

			st, err := flaky.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusError))
			Expect(err).To(HaveOccurred())
			Expect(flaky.State()).To(Equal(ClockArmed))

			clk.Advance(300 * time.Millisecond)
			st, err = flaky.Evaluate(&ref, UseInternalClock)
			Expect(err).NotTo(HaveOccurred())
			Expect(st).To(Equal(StatusStart))
			Expect(flaky.LastTime()).To(BeNumerically("==", 0))

			clk.Advance(300 * time.Millisecond)
			st, _ = flaky.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusRunning))
			Expect(flaky.LastTime()).To(BeNumerically("~", 0.3, 1e-9))
		})

		It("re-arms on request", func() {
			_, _ = ev.Evaluate(&ref, UseInternalClock)
			clk.Advance(400 * time.Millisecond)
			ev.Rearm()

			st, _ := ev.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusStart))
			Expect(ev.LastTime()).To(BeNumerically("==", 0))
		})
	})

	Context("with an explicit time", func() {
		It("uses the time verbatim and leaves the clock alone", func() {
			st, err := ev.Evaluate(&ref, 0.75)
			Expect(err).NotTo(HaveOccurred())
			Expect(st).To(Equal(StatusRunning))
			Expect(ev.LastTime()).To(Equal(0.75))
			Expect(ev.State()).To(Equal(ClockArmed))
			Expect(ref.Position).To(Equal(waypoint.Vector{0.75, 0.75, 0.75}))
		})

		It("does not disturb a running clock", func() {
			_, _ = ev.Evaluate(&ref, UseInternalClock)
			clk.Advance(200 * time.Millisecond)
			_, _ = ev.Evaluate(&ref, 0.9)

			st, _ := ev.Evaluate(&ref, UseInternalClock)
			Expect(st).To(Equal(StatusRunning))
			Expect(ev.LastTime()).To(BeNumerically("~", 0.2, 1e-9))
		})
	})

	Context("in closed loop", func() {
		It("forwards the measured state", func() {
			current := Reference{Position: waypoint.Vector{0.1, 0.2, 0.3}}
			st, err := ev.EvaluateClosedLoop(&ref, current, UseInternalClock)
			Expect(err).NotTo(HaveOccurred())
			Expect(st).To(Equal(StatusStart))
			Expect(gen.currents).To(HaveLen(1))
			Expect(gen.currents[0].Position).To(Equal(current.Position))
		})

		It("rejects a measured state of the wrong dimension", func() {
			ref = Reference{Position: waypoint.Vector{5}}
			st, err := ev.EvaluateClosedLoop(&ref, Reference{Position: waypoint.Vector{1, 2}}, 0.1)
			Expect(st).To(Equal(StatusError))
			Expect(err).To(MatchError(ErrDimensionMismatch))
			Expect(ref.Position).To(Equal(waypoint.Vector{5}))
			Expect(gen.currents).To(BeEmpty())
		})
	})

	Context("waypoint access", func() {
		It("fails on an empty set", func() {
			empty := New(gen, nil)
			wps, st, err := empty.Waypoints()
			Expect(wps).To(BeNil())
			Expect(st).To(Equal(StatusError))
			Expect(err).To(MatchError(ErrNoWaypoints))
		})

		It("returns an independent copy", func() {
			wps, _, err := ev.Waypoints()
			Expect(err).NotTo(HaveOccurred())
			wps.Clear()

			again, _, err := ev.Waypoints()
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Len()).To(Equal(3))
		})
	})
})

var _ = Describe("Status", func() {
	DescribeTable("String",
		func(s Status, want string) {
			Expect(s.String()).To(Equal(want))
		},
		Entry("error", StatusError, "error"),
		Entry("warning", StatusWarning, "warning"),
		Entry("ok", StatusOK, "ok"),
		Entry("start", StatusStart, "start"),
		Entry("running", StatusRunning, "running"),
		Entry("finished", StatusFinished, "finished"),
	)

	It("keeps error as the only negative code", func() {
		Expect(int(StatusError)).To(Equal(-1))
		Expect(int(StatusFinished)).To(Equal(4))
		Expect(StatusError.Failed()).To(BeTrue())
		Expect(StatusWarning.Failed()).To(BeFalse())
	})
})
