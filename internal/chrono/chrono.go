// Package chrono measures wall-clock time of labelled code sections. All
// state lives in a Stopwatch value owned by the caller.
package chrono

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// Record is one timed section.
type Record struct {
	Label   string
	Elapsed time.Duration
	Count   int
}

// PerOp returns the mean duration of one repetition.
func (r Record) PerOp() time.Duration {
	if r.Count <= 0 {
		return r.Elapsed
	}
	return r.Elapsed / time.Duration(r.Count)
}

type Stopwatch struct {
	now     func() time.Time
	records []Record
}

func New() *Stopwatch {
	return NewWithClock(nil)
}

// NewWithClock uses now as time source; nil selects time.Now.
func NewWithClock(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

// Start begins a section and returns the function that ends it.
func (s *Stopwatch) Start(label string) func() {
	begin := s.now()
	return func() {
		s.records = append(s.records, Record{Label: label, Elapsed: s.now().Sub(begin), Count: 1})
	}
}

// Repeat runs fn n times as one section.
func (s *Stopwatch) Repeat(label string, n int, fn func(i int)) Record {
	begin := s.now()
	for i := 0; i < n; i++ {
		fn(i)
	}
	r := Record{Label: label, Elapsed: s.now().Sub(begin), Count: n}
	s.records = append(s.records, r)
	return r
}

func (s *Stopwatch) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Stopwatch) Reset() { s.records = nil }

// Report writes one line per record.
func (s *Stopwatch) Report(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("section")+"\t"+headerStyle.Render("count")+"\t"+
		headerStyle.Render("total")+"\t"+headerStyle.Render("per op"))
	for _, r := range s.records {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Label, r.Count, r.Elapsed, r.PerOp())
	}
	return tw.Flush()
}
