// Package interpreter dispatches Take/Drop/Move commands to the combiner
// and produces a single DNF goal (or an error) per parse.
package interpreter

import (
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/ast"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/combiner"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/dnf"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/resolver"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// Interpretation pairs a candidate parse with its resolved DNF goal. It is
// the interpreter's half of the two-stage pipeline (the planner's half is
// planner.Planned, built from an Interpretation).
type Interpretation struct {
	Parse ast.ParseResult
	DNF   dnf.Formula
}

// Option configures Interpret using the standard functional-options shape.
type Option func(*options)

type options struct {
	logger hclog.Logger
}

// WithLogger attaches a logger used for debug-level diagnostics (one line
// per parse that fails to interpret). Defaults to a null logger.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Interpret is the interpreter's entry point: for each
// parse, resolve its command against snap, producing a DNF goal; return the
// parses augmented with their DNF, filtered to those that produced a
// non-empty, non-erroring result. If none succeed, return a single error
// joining the distinct per-parse messages with " ; ".
func Interpret(parses []ast.ParseResult, snap *world.Snapshot, opts ...Option) ([]Interpretation, error) {
	o := &options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(o)
	}

	var results []Interpretation
	var messages []string
	seen := make(map[string]struct{})

	for _, parse := range parses {
		f, err := interpretOne(parse.Command, snap)
		if err != nil {
			msg := err.Error()
			o.logger.Debug("parse failed to interpret", "command", parse.Command.String(), "error", msg)
			if _, dup := seen[msg]; !dup {
				seen[msg] = struct{}{}
				messages = append(messages, msg)
			}
			continue
		}
		results = append(results, Interpretation{Parse: parse, DNF: f})
	}

	if len(results) == 0 {
		return nil, &Error{Message: strings.Join(messages, " ; ")}
	}
	return results, nil
}

// Error is the interpreter's terminal error: every candidate parse failed to
// interpret.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// interpretOne dispatches a single command to the combiner.
func interpretOne(cmd ast.Command, snap *world.Snapshot) (dnf.Formula, error) {
	r := resolver.New(snap)

	switch c := cmd.(type) {
	case *ast.TakeCommand:
		return interpretTake(r, c)
	case *ast.DropCommand:
		return interpretDrop(r, snap, c)
	case *ast.MoveCommand:
		return interpretMove(r, snap, c)
	default:
		return nil, &Error{Message: "unrecognized command"}
	}
}

func interpretTake(r *resolver.Resolver, c *ast.TakeCommand) (dnf.Formula, error) {
	ids := r.Resolve(c.Entity.Object)
	if len(ids) == 0 {
		return nil, &Error{Message: "Couldn't find any matching object"}
	}
	if _, isFloor := ids[world.Floor]; isFloor {
		return nil, &Error{Message: "I cannot take the floor"}
	}
	if (c.Entity.Quantifier == ast.QuantTheOne || c.Entity.Quantifier == ast.QuantAll) && len(ids) != 1 {
		return nil, &Error{Message: "Too many matching objects for 'the'"}
	}

	var f dnf.Formula
	for _, id := range ids.Slice() {
		f = append(f, dnf.Conjunction{{Relation: dnf.Holding, A: id}})
	}
	return f, nil
}

func interpretDrop(r *resolver.Resolver, snap *world.Snapshot, c *ast.DropCommand) (dnf.Formula, error) {
	if snap.Holding == "" {
		return nil, &Error{Message: "the arm is not holding anything to drop"}
	}
	targets := r.Resolve(c.Location.Entity.Object)
	return combiner.Combine(snap, []string{snap.Holding}, ast.QuantAny, targets.Slice(), c.Location.Entity.Quantifier, c.Location.Relation)
}

func interpretMove(r *resolver.Resolver, snap *world.Snapshot, c *ast.MoveCommand) (dnf.Formula, error) {
	subjects := r.Resolve(c.Entity.Object)
	targets := r.Resolve(c.Location.Entity.Object)
	return combiner.Combine(snap, subjects.Slice(), c.Entity.Quantifier, targets.Slice(), c.Location.Entity.Quantifier, c.Location.Relation)
}
