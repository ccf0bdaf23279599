// Package dnf defines the goal representation shared by the interpreter and
// the planner: literals over object ids, conjunctions of literals, and a
// disjunctive-normal-form formula over conjunctions.
//
// The shapes are deliberately plain data (slices of comparable structs)
// rather than a closure-over-context goal type, because the interpreter
// must filter, deduplicate and re-inspect formulas after they are built —
// a capability an opaque "run and observe success/failure" closure does
// not offer.
package dnf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/ast"
)

// Holding is the unary relation "the arm holds object A". It is represented
// alongside the seven spatial relations so a Literal can carry either a
// binary spatial relation or this unary one uniformly.
const Holding ast.Relation = "holding"

// Literal is a single relational atom, ±R(a, b). Negation is tracked via
// Negated; the combiner never actually emits negated literals, but the
// field exists so goal-test code (planner) and future extensions have a
// uniform representation.
type Literal struct {
	Relation ast.Relation
	A        string
	// B is the second argument. It is the empty string for the unary
	// Holding relation.
	B      string
	Negated bool
}

// IsUnary reports whether this literal is the single-argument Holding
// relation.
func (l Literal) IsUnary() bool { return l.Relation == Holding }

func (l Literal) String() string {
	sign := ""
	if l.Negated {
		sign = "-"
	}
	if l.IsUnary() {
		return fmt.Sprintf("%s%s(%s)", sign, l.Relation, l.A)
	}
	return fmt.Sprintf("%s%s(%s,%s)", sign, l.Relation, l.A, l.B)
}

// Equal reports structural equality between two literals.
func (l Literal) Equal(o Literal) bool {
	return l.Relation == o.Relation && l.A == o.A && l.B == o.B && l.Negated == o.Negated
}

// Conjunction is an ordered list of literals, interpreted as logical AND.
type Conjunction []Literal

func (c Conjunction) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return strings.Join(parts, " & ")
}

// Equal reports order-independent equality between two conjunctions,
// compared as multisets of literals: re-deriving the same conjunction in a
// different literal order must still compare equal.
func (c Conjunction) Equal(o Conjunction) bool {
	if len(c) != len(o) {
		return false
	}
	return sameLiteralMultiset(c, o)
}

func sameLiteralMultiset(a, b Conjunction) bool {
	used := make([]bool, len(b))
	for _, la := range a {
		found := false
		for j, lb := range b {
			if used[j] {
				continue
			}
			if la.Equal(lb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// key renders a canonical, order-independent string for a conjunction, used
// by Formula.Equal.
func (c Conjunction) key() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, "\x00")
}

// Formula is an ordered list of conjunctions, interpreted as logical OR. An
// empty Formula is unsatisfiable.
type Formula []Conjunction

// Empty reports whether the formula has no surviving disjuncts.
func (f Formula) Empty() bool { return len(f) == 0 }

func (f Formula) String() string {
	if len(f) == 0 {
		return "<false>"
	}
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = "(" + c.String() + ")"
	}
	return strings.Join(parts, " | ")
}

// Equal reports order-independent equality of formulas, compared as
// multisets of conjunctions: reordering disjuncts must not affect equality.
func (f Formula) Equal(o Formula) bool {
	if len(f) != len(o) {
		return false
	}
	seen := make(map[string]int)
	for _, c := range f {
		seen[c.key()]++
	}
	for _, c := range o {
		k := c.key()
		if seen[k] == 0 {
			return false
		}
		seen[k]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}

// ObjectIDs returns the distinct object ids referenced anywhere in the
// formula (used by invariant checks: every literal must refer to an id
// that exists in the world, or "floor").
func (f Formula) ObjectIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, c := range f {
		for _, l := range c {
			add(l.A)
			add(l.B)
		}
	}
	return ids
}
