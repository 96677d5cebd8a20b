// Package viz renders a trajectory evaluator live in the terminal.
//
// [Model] is a Bubble Tea model that ticks an evaluator on its internal
// clock and draws the waypoint path, the moving reference and a history
// graph on a Braille [Canvas].
//
// # Key Bindings
//
//	Space - Pause/Resume sampling
//	R     - Re-arm the evaluator clock
//	Tab   - Cycle the plotted axes
//	Q     - Quit
package viz
