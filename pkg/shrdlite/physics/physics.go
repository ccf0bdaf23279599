// Package physics implements the static, position-independent predicate
// that decides whether a relation between two object descriptions is
// physically admissible. It knows nothing about where objects currently
// sit — that is the resolver's "positional" predicate
// (pkg/shrdlite/resolver) — only whether the relation could ever hold
// between objects of these forms/sizes.
package physics

import (
	"fmt"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/ast"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// Object is the minimal shape physics rules need: id, form and size. The id
// is used only for the floor and same-object checks. Color never
// participates in a physics rule, so it is intentionally omitted.
type Object struct {
	ID   string
	Form string
	Size string
}

// FromDescription builds an Object from a world.Description for id.
func FromDescription(id string, d world.Description) Object {
	return Object{ID: id, Form: d.Form, Size: d.Size}
}

// Floor is the physics-rule view of the synthetic floor object.
var Floor = Object{ID: world.Floor, Form: string(ast.FormFloor)}

// Legal evaluates the physical-law rule set, in order, and returns the
// first violation encountered, or ("", true) if the relation is admissible.
// Legal is pure: it consults only a and b's id/form/size, never any world
// position.
func Legal(relation ast.Relation, a, b Object) (violation string, ok bool) {
	// Rule 1: the floor can never be the subject of a relation; it cannot
	// be taken, moved, or otherwise act as "a".
	if a.ID == world.Floor {
		return "I cannot take the floor", false
	}

	// Rule 2 (relocated, see DESIGN.md "ordering of the `a = b` check"): a same-id
	// self-reference is illegal regardless of relation or form, checked
	// immediately after the floor-as-subject check and before any
	// shape-specific rule so the diagnostic stays stable no matter what
	// a and b happen to be.
	if a.ID != "" && a.ID == b.ID {
		return "an object cannot relate to itself", false
	}

	// Rule 3: only ontop/above make sense with the floor as the target;
	// everything else naming the floor as "b" is illegal.
	if b.ID == world.Floor {
		switch relation {
		case ast.RelUnder, ast.RelLeftOf, ast.RelRightOf, ast.RelBeside:
			return fmt.Sprintf("the floor cannot be %s anything", relation), false
		case ast.RelInside:
			return "the floor has no interior", false
		}
	}

	// Rule 4: balls roll off everything except the floor.
	if a.Form == string(ast.FormBall) && relation == ast.RelOnTop && b.Form != string(ast.FormFloor) {
		return fmt.Sprintf("a %s cannot rest ontop of a %s, it would roll away", a.Form, b.Form), false
	}

	// Rule 5: balls support nothing.
	if a.Form == string(ast.FormBall) && relation == ast.RelUnder {
		return "a ball cannot support anything from below", false
	}

	// Rule 6: nothing rests on top of, or above, a ball.
	if b.Form == string(ast.FormBall) && (relation == ast.RelOnTop || relation == ast.RelAbove) {
		return fmt.Sprintf("nothing can be %s a ball", relation), false
	}

	// Rule 7: only boxes have an interior.
	if relation == ast.RelInside && b.Form != string(ast.FormBox) {
		return fmt.Sprintf("a %s has no interior", b.Form), false
	}

	// Rule 8: contents of a box go "inside", never "ontop".
	if relation == ast.RelOnTop && b.Form == string(ast.FormBox) {
		return "things go inside a box, not ontop of it", false
	}

	// Rule 9: pyramids, planks and boxes of the same size as the box they
	// would enter are too bulky to fit inside it.
	if relation == ast.RelInside && b.Form == string(ast.FormBox) {
		switch a.Form {
		case string(ast.FormPyramid), string(ast.FormPlank), string(ast.FormBox):
			if a.Size == b.Size {
				return fmt.Sprintf("a %s %s does not fit inside a %s box", a.Size, a.Form, b.Size), false
			}
		}
	}

	// Rule 10: a box cannot rest on a pyramid or brick of matching
	// "risk" profile — both small, or both large with a pyramid beneath.
	if relation == ast.RelOnTop && a.Form == string(ast.FormBox) {
		switch b.Form {
		case string(ast.FormPyramid), string(ast.FormBrick):
			bothSmall := a.Size == string(ast.SizeSmall) && b.Size == string(ast.SizeSmall)
			bothLargePyramid := a.Size == string(ast.SizeLarge) && b.Size == string(ast.SizeLarge) && b.Form == string(ast.FormPyramid)
			if bothSmall || bothLargePyramid {
				return fmt.Sprintf("a %s box cannot balance ontop of a %s %s", a.Size, b.Size, b.Form), false
			}
		}
	}

	// Rule 11: a large object cannot be supported by a small one.
	if (relation == ast.RelInside || relation == ast.RelOnTop) &&
		a.Size == string(ast.SizeLarge) && b.Size == string(ast.SizeSmall) {
		return fmt.Sprintf("a large %s does not fit %s a small %s", a.Form, relation, b.Form), false
	}

	return "", true
}

// LegalDrop specializes Legal to the "ontop" relation for the planner's drop
// action: dropping held directly onto the floor (target == world.Floor) is
// always legal; otherwise it is exactly Legal(ontop, held, target).
func LegalDrop(held, target Object) (violation string, ok bool) {
	if target.ID == world.Floor {
		return "", true
	}
	return Legal(ast.RelOnTop, held, target)
}
