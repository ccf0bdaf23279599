// Package resolver maps an object description tree to the set of world
// object ids that satisfy it.
//
// Recursive resolution over a RelativeObject can visit the same description
// node many times when a sentence nests several relative clauses over a
// shared sub-description, so resolved sets are memoized per node. The memo
// key is pointer identity of the ast.ObjectDesc node, which is sufficient
// because resolution is a single depth-first pass per command rather than
// an open-ended, possibly-cyclic evaluation.
package resolver

import (
	"sort"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/ast"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/physics"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// IDSet is an unordered set of object ids.
type IDSet map[string]struct{}

// NewIDSet builds an IDSet from a slice.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Slice returns the set's elements as a sorted slice, for deterministic
// iteration in the combiner and in tests.
func (s IDSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s IDSet) union(o IDSet) IDSet {
	out := make(IDSet, len(s)+len(o))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

func (s IDSet) minus(o IDSet) IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		if _, excluded := o[id]; !excluded {
			out[id] = struct{}{}
		}
	}
	return out
}

// Resolver resolves object descriptions against a fixed world snapshot. A
// Resolver is created per interpreted command so its memo cache never
// leaks state across unrelated commands (the cache key is node pointer
// identity, which is only meaningful within one parse's description tree).
type Resolver struct {
	world *world.Snapshot
	memo  map[ast.ObjectDesc]IDSet
}

// New creates a Resolver bound to snap.
func New(snap *world.Snapshot) *Resolver {
	return &Resolver{
		world: snap,
		memo:  make(map[ast.ObjectDesc]IDSet),
	}
}

// Resolve maps an object description to the set of object ids it denotes,
// dispatching over all three ObjectDesc variants.
func (r *Resolver) Resolve(desc ast.ObjectDesc) IDSet {
	if cached, ok := r.memo[desc]; ok {
		return cached
	}
	var result IDSet
	switch d := desc.(type) {
	case *ast.SimpleObject:
		result = r.resolveSimple(d)
	case *ast.RelativeObject:
		result = r.resolveRelative(d)
	case *ast.ComplexObject:
		result = r.resolveComplex(d)
	default:
		result = NewIDSet()
	}
	r.memo[desc] = result
	return result
}

func (r *Resolver) resolveSimple(d *ast.SimpleObject) IDSet {
	if d.Form == ast.FormFloor {
		return NewIDSet(world.Floor)
	}
	out := NewIDSet()
	for _, id := range r.candidateIDs() {
		desc, ok := r.world.Catalogue.Describe(id)
		if !ok {
			continue
		}
		if d.Form != ast.FormAny && string(d.Form) != desc.Form {
			continue
		}
		if d.Size != "" && string(d.Size) != desc.Size {
			continue
		}
		if d.Color != "" && string(d.Color) != desc.Color {
			continue
		}
		out[id] = struct{}{}
	}
	return out
}

// candidateIDs returns every id currently present in a stack or held.
func (r *Resolver) candidateIDs() []string {
	var ids []string
	if r.world.Holding != "" {
		ids = append(ids, r.world.Holding)
	}
	for _, stack := range r.world.Stacks {
		ids = append(ids, stack...)
	}
	return ids
}

func (r *Resolver) resolveRelative(d *ast.RelativeObject) IDSet {
	a := r.Resolve(d.Object)
	b := r.Resolve(d.Location.Entity.Object)
	bIDs := b.Slice()

	out := NewIDSet()
	for _, aID := range a.Slice() {
		if d.Location.Entity.Quantifier == ast.QuantAll {
			if r.witnessesAll(d.Location.Relation, aID, bIDs) {
				out[aID] = struct{}{}
			}
			continue
		}
		if r.witnessesAny(d.Location.Relation, aID, bIDs) {
			out[aID] = struct{}{}
		}
	}
	return out
}

func (r *Resolver) witnessesAny(rel ast.Relation, aID string, bIDs []string) bool {
	for _, bID := range bIDs {
		if r.holds(rel, aID, bID) {
			return true
		}
	}
	return false
}

func (r *Resolver) witnessesAll(rel ast.Relation, aID string, bIDs []string) bool {
	if len(bIDs) == 0 {
		return false
	}
	for _, bID := range bIDs {
		if !r.holds(rel, aID, bID) {
			return false
		}
	}
	return true
}

// holds reports whether aID stands in rel with bID in the current world:
// both physically admissible (physics.Legal) and positionally true
// (Positional) right now.
func (r *Resolver) holds(rel ast.Relation, aID, bID string) bool {
	aObj := r.physicsObject(aID)
	bObj := r.physicsObject(bID)
	if _, ok := physics.Legal(rel, aObj, bObj); !ok {
		return false
	}
	return Positional(r.world, rel, aID, bID)
}

func (r *Resolver) physicsObject(id string) physics.Object {
	if id == world.Floor {
		return physics.Floor
	}
	desc, _ := r.world.Catalogue.Describe(id)
	return physics.FromDescription(id, desc)
}

func (r *Resolver) resolveComplex(d *ast.ComplexObject) IDSet {
	a := r.Resolve(d.Object1)
	b := r.Resolve(d.Object2)
	switch d.Operator {
	case ast.OpOr:
		return a.union(b)
	case ast.OpExcept:
		return a.minus(b)
	default:
		return NewIDSet()
	}
}

// Positional evaluates the positional predicate: whether
// relation holds between aID and bID given their current stack
// coordinates, independent of physical-law legality. The floor has
// coordinate (col=-1, row=-1) and is treated as lying directly below every
// stack for ontop/above purposes.
func Positional(snap *world.Snapshot, relation ast.Relation, aID, bID string) bool {
	aCoord, aOK := snap.Coordinate(aID)
	bCoord, bOK := snap.Coordinate(bID)
	if !aOK || !bOK {
		return false
	}

	switch relation {
	case ast.RelOnTop, ast.RelInside:
		if bID == world.Floor {
			return aCoord.Row == 0
		}
		return aCoord.Col == bCoord.Col && aCoord.Row == bCoord.Row+1
	case ast.RelAbove:
		if bID == world.Floor {
			return true
		}
		return aCoord.Col == bCoord.Col && aCoord.Row > bCoord.Row
	case ast.RelUnder:
		if bID == world.Floor {
			return false
		}
		return aCoord.Col == bCoord.Col && aCoord.Row < bCoord.Row
	case ast.RelLeftOf:
		if bID == world.Floor {
			return false
		}
		return aCoord.Col < bCoord.Col
	case ast.RelRightOf:
		if bID == world.Floor {
			return false
		}
		return aCoord.Col > bCoord.Col
	case ast.RelBeside:
		if bID == world.Floor {
			return false
		}
		diff := aCoord.Col - bCoord.Col
		if diff < 0 {
			diff = -diff
		}
		return diff == 1
	default:
		return false
	}
}
