// Package planner implements the world state graph, the goal test, the A*
// search engine, the heuristic bank, and the planner entry point.
package planner

import (
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/dnf"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/physics"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/resolver"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// Action is one of the four arm actions.
type Action byte

const (
	ActionLeft  Action = 'l'
	ActionRight Action = 'r'
	ActionPick  Action = 'p'
	ActionDrop  Action = 'd'
)

// Successors returns every legal (action, child) pair reachable from snap in
// one arm action. Each successor is a freshly cloned snapshot, since world
// snapshots must never be mutated in place.
func Successors(snap *world.Snapshot) []Successor {
	var out []Successor

	if snap.Arm > 0 {
		child := snap.Clone()
		child.Arm--
		out = append(out, Successor{Action: ActionLeft, Child: child, Cost: 1})
	}
	if snap.Arm < len(snap.Stacks)-1 {
		child := snap.Clone()
		child.Arm++
		out = append(out, Successor{Action: ActionRight, Child: child, Cost: 1})
	}
	if snap.Holding == "" {
		if top, ok := snap.Top(snap.Arm); ok {
			child := snap.Clone()
			child.Stacks[child.Arm] = child.Stacks[child.Arm][:len(child.Stacks[child.Arm])-1]
			child.Holding = top
			out = append(out, Successor{Action: ActionPick, Child: child, Cost: 1})
		}
	}
	if snap.Holding != "" {
		target := floorObject()
		if topID, nonEmpty := snap.Top(snap.Arm); nonEmpty {
			target = physicsObject(snap, topID)
		}
		held := physicsObject(snap, snap.Holding)
		if _, ok := physics.LegalDrop(held, target); ok {
			child := snap.Clone()
			child.Stacks[child.Arm] = append(child.Stacks[child.Arm], child.Holding)
			child.Holding = ""
			out = append(out, Successor{Action: ActionDrop, Child: child, Cost: 1})
		}
	}
	return out
}

// Successor is one edge out of a state-graph node: the action taken and
// the resulting snapshot. Every edge has cost 1.
type Successor struct {
	Action Action
	Child  *world.Snapshot
	Cost   int
}

func physicsObject(snap *world.Snapshot, id string) physics.Object {
	if id == world.Floor {
		return floorObject()
	}
	desc, _ := snap.Catalogue.Describe(id)
	return physics.FromDescription(id, desc)
}

func floorObject() physics.Object { return physics.Floor }

// SatisfiesGoal is the planner's goal test: snap satisfies formula iff some
// conjunction's every literal is satisfied — a binary literal via
// resolver.Positional, a Holding literal by direct comparison.
func SatisfiesGoal(snap *world.Snapshot, formula dnf.Formula) bool {
	for _, conj := range formula {
		if conjunctionHolds(snap, conj) {
			return true
		}
	}
	return false
}

func conjunctionHolds(snap *world.Snapshot, conj dnf.Conjunction) bool {
	for _, lit := range conj {
		if !literalHolds(snap, lit) {
			return false
		}
	}
	return true
}

func literalHolds(snap *world.Snapshot, lit dnf.Literal) bool {
	var holds bool
	if lit.IsUnary() {
		holds = snap.Holding == lit.A
	} else {
		holds = resolver.Positional(snap, lit.Relation, lit.A, lit.B)
	}
	if lit.Negated {
		return !holds
	}
	return holds
}
