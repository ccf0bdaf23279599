// Package ast defines the object description tree and command types consumed
// by the interpreter. These values are produced by an external parser (out of
// scope for this module) and are read-only from the interpreter's point of
// view: each node is visited once during resolution and then discarded.
//
// The shape follows a tagged-sum discipline rather than a class hierarchy:
// ObjectDesc is an interface implemented by exactly three concrete node
// types, and callers switch on the concrete type (or use the Kind method)
// to dispatch, rather than adding virtual methods per variant.
package ast

import (
	"fmt"
	"strings"
)

// Form enumerates the physical shapes an object or relation target can take.
type Form string

const (
	FormBrick   Form = "brick"
	FormPlank   Form = "plank"
	FormBall    Form = "ball"
	FormPyramid Form = "pyramid"
	FormBox     Form = "box"
	FormTable   Form = "table"
	// FormFloor is reserved: it never appears as a real object's form, only
	// as the form of the synthetic "floor" object used in relations.
	FormFloor Form = "floor"
	// FormAny matches any real form during resolution.
	FormAny Form = "anyform"
)

// Size enumerates object sizes. The empty string means "unconstrained" when
// it appears in a SimpleObject description.
type Size string

const (
	SizeSmall Size = "small"
	SizeLarge Size = "large"
)

// Color enumerates object colors. The empty string means "unconstrained"
// when it appears in a SimpleObject description.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlack  Color = "black"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorWhite  Color = "white"
)

// Relation enumerates the spatial relations a Location can express.
type Relation string

const (
	RelOnTop   Relation = "ontop"
	RelInside  Relation = "inside"
	RelAbove   Relation = "above"
	RelUnder   Relation = "under"
	RelLeftOf  Relation = "leftof"
	RelRightOf Relation = "rightof"
	RelBeside  Relation = "beside"
)

// Quantifier enumerates the three entity quantifiers.
type Quantifier string

const (
	// QuantTheOne requires exactly one referent.
	QuantTheOne Quantifier = "the"
	// QuantAny is satisfied existentially — one disjunct per witness.
	QuantAny Quantifier = "any"
	// QuantAll is satisfied universally — a single conjunction over the
	// whole referent set.
	QuantAll Quantifier = "all"
)

// CombineOp enumerates the ways two object descriptions combine.
type CombineOp string

const (
	OpOr     CombineOp = "or"
	OpExcept CombineOp = "except"
)

// ObjectDesc is the tagged sum of object description nodes: SimpleObject,
// RelativeObject, and ComplexObject. Implementations must be comparable by
// pointer identity so the resolver can memoize resolveObject per node
// (see resolver.Resolver) — do not copy a node by value once it has been
// handed to the interpreter.
type ObjectDesc interface {
	fmt.Stringer
	isObjectDesc()
}

// SimpleObject is a leaf description matching on form/size/color. A zero
// Size or Color means "unconstrained"; Form == FormAny matches any real
// form, including FormFloor only when explicitly requested as such (the
// resolver special-cases Form == FormFloor, see resolver.Resolve).
type SimpleObject struct {
	Form  Form
	Size  Size  // "" = unconstrained
	Color Color // "" = unconstrained
}

func (*SimpleObject) isObjectDesc() {}

func (o *SimpleObject) String() string {
	var b strings.Builder
	b.WriteString(string(o.Form))
	if o.Size != "" {
		fmt.Fprintf(&b, "[size=%s]", o.Size)
	}
	if o.Color != "" {
		fmt.Fprintf(&b, "[color=%s]", o.Color)
	}
	return b.String()
}

// RelativeObject restricts object by requiring it stand in location.Relation
// with some (or every, for quantifier "all") entity matching
// location.Entity.Object.
type RelativeObject struct {
	Object   ObjectDesc
	Location *Location
}

func (*RelativeObject) isObjectDesc() {}

func (o *RelativeObject) String() string {
	return fmt.Sprintf("(%s %s)", o.Object, o.Location)
}

// ComplexObject combines two descriptions with "or" (union) or "except"
// (set difference, Object1 minus Object2).
type ComplexObject struct {
	Object1  ObjectDesc
	Object2  ObjectDesc
	Operator CombineOp
}

func (*ComplexObject) isObjectDesc() {}

func (o *ComplexObject) String() string {
	return fmt.Sprintf("(%s %s %s)", o.Object1, o.Operator, o.Object2)
}

// Entity pairs a quantifier with the object description it quantifies over.
type Entity struct {
	Quantifier Quantifier
	Object     ObjectDesc
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s(%s)", e.Quantifier, e.Object)
}

// Location pairs a spatial relation with the entity that must stand in that
// relation to the described object.
type Location struct {
	Relation Relation
	Entity   *Entity
}

func (l *Location) String() string {
	return fmt.Sprintf("%s %s", l.Relation, l.Entity)
}

// Command is the tagged sum of the three command forms the interpreter
// dispatches: TakeCommand, DropCommand, MoveCommand.
type Command interface {
	fmt.Stringer
	isCommand()
}

// TakeCommand asks the arm to pick up the single object the entity resolves
// to.
type TakeCommand struct {
	Entity *Entity
}

func (*TakeCommand) isCommand() {}

func (c *TakeCommand) String() string { return fmt.Sprintf("take %s", c.Entity) }

// DropCommand asks the arm to drop whatever it is holding onto the described
// location. It carries no entity of its own — the subject is implicitly
// "whatever is held".
type DropCommand struct {
	Location *Location
}

func (*DropCommand) isCommand() {}

func (c *DropCommand) String() string { return fmt.Sprintf("drop %s", c.Location) }

// MoveCommand asks the arm to place the entity's referent(s) into the given
// location.
type MoveCommand struct {
	Entity   *Entity
	Location *Location
}

func (*MoveCommand) isCommand() {}

func (c *MoveCommand) String() string { return fmt.Sprintf("move %s %s", c.Entity, c.Location) }

// ParseResult bundles a single parsed command tree as handed to the
// interpreter. It is the unit of work for the interpreter entry point: a
// caller passes in a slice of ParseResult (one per candidate parse of the
// user's sentence) and the interpreter augments/filters that slice.
type ParseResult struct {
	// Command is the parsed command tree. Required.
	Command Command
}
