// Package combiner implements the quantifier combiner: given two resolved
// id sets with their quantifiers and a relation, produce a DNF formula (or
// a joined error if no reading survives).
//
// The AND-of-literals-per-conjunct, OR-of-conjuncts-per-formula shape is
// built as inspectable data rather than a composed closure — see
// pkg/shrdlite/dnf's package doc for why.
package combiner

import (
	"sort"
	"strings"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/ast"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/dnf"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/physics"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// Error is a combiner failure: either a pre-check violation or a composite
// of every distinct per-pair physics violation, joined with "; ".
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Combine implements the quantifier combiner: given resolved sets a/b (with
// quantifiers qa/qb) and a relation, produce the resulting DNF formula, or
// an *Error if no reading survives.
func Combine(snap *world.Snapshot, a []string, qa ast.Quantifier, b []string, qb ast.Quantifier, relation ast.Relation) (dnf.Formula, error) {
	if len(a) == 0 {
		return nil, &Error{Message: "Couldn't find any matching object"}
	}
	if len(b) == 0 {
		return nil, &Error{Message: "Couldn't find any matching destination"}
	}
	if qa == ast.QuantTheOne && len(a) > 1 {
		return nil, &Error{Message: "Too many matching objects for 'the'"}
	}
	if qb == ast.QuantTheOne && len(b) > 1 {
		return nil, &Error{Message: "Too many matching destinations for 'the'"}
	}
	// "all" over ontop/inside with more than one b is only illegal when b
	// isn't the floor — many balls can each be ontop(·, floor).
	bIsSingleNonFloor := len(b) > 1 && b[0] != world.Floor
	if (relation == ast.RelOnTop || relation == ast.RelInside) && qb == ast.QuantAll && bIsSingleNonFloor {
		return nil, &Error{Message: "Things can only be " + string(relation) + " exactly one object"}
	}
	if (relation == ast.RelOnTop || relation == ast.RelInside) && qa == ast.QuantAll && len(a) > 1 && b[0] != world.Floor {
		return nil, &Error{Message: "Only 1 thing can be " + string(relation) + " another object"}
	}

	pairLegal := func(aID, bID string) (string, bool) {
		return physics.Legal(relation, physicsObject(snap, aID), physicsObject(snap, bID))
	}

	var formula dnf.Formula
	violations := newViolationSet()

	switch {
	case qa == ast.QuantAll && qb == ast.QuantAll:
		conj := make(dnf.Conjunction, 0, len(a)*len(b))
		ok := true
		for _, aID := range a {
			for _, bID := range b {
				if v, legal := pairLegal(aID, bID); !legal {
					violations.add(v)
					ok = false
					continue
				}
				conj = append(conj, dnf.Literal{Relation: relation, A: aID, B: bID})
			}
		}
		if ok && len(conj) > 0 {
			formula = append(formula, conj)
		}

	case qa == ast.QuantAll:
		for _, bID := range b {
			conj := make(dnf.Conjunction, 0, len(a))
			ok := true
			for _, aID := range a {
				if v, legal := pairLegal(aID, bID); !legal {
					violations.add(v)
					ok = false
					continue
				}
				conj = append(conj, dnf.Literal{Relation: relation, A: aID, B: bID})
			}
			if ok && len(conj) > 0 {
				formula = append(formula, conj)
			}
		}

	case qb == ast.QuantAll:
		for _, aID := range a {
			conj := make(dnf.Conjunction, 0, len(b))
			ok := true
			for _, bID := range b {
				if v, legal := pairLegal(aID, bID); !legal {
					violations.add(v)
					ok = false
					continue
				}
				conj = append(conj, dnf.Literal{Relation: relation, A: aID, B: bID})
			}
			if ok && len(conj) > 0 {
				formula = append(formula, conj)
			}
		}

	default: // neither quantifier is "all": wide existential disjunction
		for _, aID := range a {
			for _, bID := range b {
				if v, legal := pairLegal(aID, bID); !legal {
					violations.add(v)
					continue
				}
				formula = append(formula, dnf.Conjunction{{Relation: relation, A: aID, B: bID}})
			}
		}
	}

	if len(formula) == 0 {
		return nil, &Error{Message: violations.join()}
	}
	return formula, nil
}

func physicsObject(snap *world.Snapshot, id string) physics.Object {
	if id == world.Floor {
		return physics.Floor
	}
	desc, _ := snap.Catalogue.Describe(id)
	return physics.FromDescription(id, desc)
}

// violationSet collects distinct violation strings and joins them, sorted,
// with "; ".
type violationSet struct {
	order []string
	seen  map[string]struct{}
}

func newViolationSet() *violationSet {
	return &violationSet{seen: make(map[string]struct{})}
}

func (v *violationSet) add(msg string) {
	if msg == "" {
		return
	}
	if _, ok := v.seen[msg]; ok {
		return
	}
	v.seen[msg] = struct{}{}
	v.order = append(v.order, msg)
}

func (v *violationSet) join() string {
	if len(v.order) == 0 {
		return "no legal pairing found"
	}
	out := append([]string(nil), v.order...)
	sort.Strings(out)
	return strings.Join(out, "; ")
}
