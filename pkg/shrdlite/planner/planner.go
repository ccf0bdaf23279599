// planner.go implements the planner entry point: given a set of interpreted
// parses and the world, attach a plan string (or the "already true"
// sentinel, or drop the parse on timeout/failure), raising a joined error
// only when every parse failed.
package planner

import (
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/interpreter"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// AlreadyTrue is the sentinel plan string returned for a goal that holds in
// the start state, requiring zero actions.
const AlreadyTrue = "The interpretation is already true!"

// DefaultTimeout is used when no WithTimeout option is passed to Plan.
const DefaultTimeout = 10 * time.Second

// Planned pairs an Interpretation with its resulting plan and search
// statistics.
type Planned struct {
	Interpretation interpreter.Interpretation
	Plan           string
	Stats          Stats
}

// Stats reports the A* search statistics: the reconstructed cost and the
// number of distinct nodes seen.
type Stats struct {
	Cost      int
	NodesSeen int
}

// Error is the planner's terminal error: every candidate parse timed out or
// failed to find a plan.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Option configures Plan.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  hclog.Logger
}

// WithTimeout sets the wall-clock deadline applied to each parse's search
// independently.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger attaches a logger for debug-level search diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Plan attaches a plan to each interpretation, given a starting world
// snapshot, and reports search statistics alongside each result.
func Plan(interpretations []interpreter.Interpretation, start *world.Snapshot, opts ...Option) ([]Planned, error) {
	o := &options{timeout: DefaultTimeout, logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(o)
	}

	var out []Planned
	var messages []string
	seen := make(map[string]struct{})

	for _, interp := range interpretations {
		planned, err := planOne(interp, start, o)
		if err != nil {
			msg := err.Error()
			o.logger.Debug("parse failed to plan", "command", interp.Parse.Command.String(), "error", msg)
			if _, dup := seen[msg]; !dup {
				seen[msg] = struct{}{}
				messages = append(messages, msg)
			}
			continue
		}
		out = append(out, planned)
	}

	if len(out) == 0 {
		return nil, &Error{Message: strings.Join(messages, " ; ")}
	}
	return out, nil
}

func planOne(interp interpreter.Interpretation, start *world.Snapshot, o *options) (Planned, error) {
	goal := func(s *world.Snapshot) bool { return SatisfiesGoal(s, interp.DNF) }
	h := NewHeuristic(interp.DNF)

	result := Search(start, goal, h.Estimate,
		WithSearchTimeout(o.timeout),
		WithSearchLogger(o.logger),
	)

	switch result.Status {
	case StatusTimeout:
		return Planned{}, &Error{Message: "timeout"}
	case StatusFailure:
		return Planned{}, &Error{Message: "failure"}
	}

	plan := ActionsToString(result.Actions)
	if plan == "" {
		plan = AlreadyTrue
	}
	return Planned{
		Interpretation: interp,
		Plan:           plan,
		Stats:          Stats{Cost: result.Cost, NodesSeen: result.NodesSeen},
	}, nil
}
