// Package world defines the immutable world snapshot consumed by the
// resolver, the combiner, and the planner's state graph.
//
// The object catalogue is modeled as an indexed, copy-on-write fact store:
// each descriptive column (form, size, color) is indexed by value and
// exposed through ByForm/BySize/ByColor. The resolver does not use these
// indexes: it resolves a SimpleObject description by checking the
// catalogue entry of every object present in the world. The catalogue is
// immutable and shared across snapshots cloned during search; only the
// per-snapshot stacks/arm/holding fields are cloned.
package world

import (
	"fmt"
	"sort"
	"strings"
)

// Floor is the id of the synthetic floor pseudo-object. It is never present
// in Catalogue, never appears in a stack, and is never held.
const Floor = "floor"

// Description is an object's immutable catalogue entry.
type Description struct {
	Form  string
	Size  string // "small" | "large" | "" (floor only)
	Color string // "" for floor
}

// Catalogue is an immutable, indexed mapping from object id to Description.
// Catalogue values are shared by reference across every Snapshot derived
// from the same world; building one is the only place that touches its
// internals.
type Catalogue struct {
	objects map[string]Description
	byForm  map[string]map[string]struct{}
	bySize  map[string]map[string]struct{}
	byColor map[string]map[string]struct{}
}

// NewCatalogue builds an indexed catalogue from an id->Description mapping.
// The input map is copied; later mutation of the caller's map does not
// affect the returned Catalogue.
func NewCatalogue(objects map[string]Description) *Catalogue {
	c := &Catalogue{
		objects: make(map[string]Description, len(objects)),
		byForm:  make(map[string]map[string]struct{}),
		bySize:  make(map[string]map[string]struct{}),
		byColor: make(map[string]map[string]struct{}),
	}
	for id, desc := range objects {
		c.objects[id] = desc
		index(c.byForm, desc.Form, id)
		index(c.bySize, desc.Size, id)
		index(c.byColor, desc.Color, id)
	}
	return c
}

func index(idx map[string]map[string]struct{}, key, id string) {
	if key == "" {
		return
	}
	bucket, ok := idx[key]
	if !ok {
		bucket = make(map[string]struct{})
		idx[key] = bucket
	}
	bucket[id] = struct{}{}
}

// Describe returns the catalogue entry for id and whether it exists.
func (c *Catalogue) Describe(id string) (Description, bool) {
	d, ok := c.objects[id]
	return d, ok
}

// ByForm returns the set of ids (as a fresh slice) whose form equals form.
// An empty form argument returns nil.
func (c *Catalogue) ByForm(form string) []string { return setToSlice(c.byForm[form]) }

// BySize returns the set of ids whose size equals size.
func (c *Catalogue) BySize(size string) []string { return setToSlice(c.bySize[size]) }

// ByColor returns the set of ids whose color equals color.
func (c *Catalogue) ByColor(color string) []string { return setToSlice(c.byColor[color]) }

// AllIDs returns every id in the catalogue, in sorted order.
func (c *Catalogue) AllIDs() []string {
	ids := make([]string, 0, len(c.objects))
	for id := range c.objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func setToSlice(s map[string]struct{}) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Coordinate locates an object within a snapshot's stacks. The floor's
// coordinate is conventionally {Col: -1, Row: -1} and is treated as lying
// directly below every stack for ontop/above purposes.
type Coordinate struct {
	Col int
	Row int
}

// FloorCoordinate is the sentinel coordinate used for the floor.
var FloorCoordinate = Coordinate{Col: -1, Row: -1}

// Snapshot is the central immutable value of the system: an arm position, an
// optional held object, and an ordered sequence of stacks, each an ordered
// bottom-to-top sequence of object ids. Snapshot values must never be
// mutated in place — every transition (planner successor, or manual
// construction) produces a new Snapshot sharing the same Catalogue pointer.
type Snapshot struct {
	Stacks    [][]string
	Arm       int
	Holding   string // "" means nothing is held
	Catalogue *Catalogue
}

// Clone returns a deep copy of the stacks (and arm/holding, which are value
// types) but shares the Catalogue pointer: only the stacks need a deep copy
// on expansion, since the catalogue is immutable and shared.
func (s *Snapshot) Clone() *Snapshot {
	stacks := make([][]string, len(s.Stacks))
	for i, stack := range s.Stacks {
		stacks[i] = append([]string(nil), stack...)
	}
	return &Snapshot{
		Stacks:    stacks,
		Arm:       s.Arm,
		Holding:   s.Holding,
		Catalogue: s.Catalogue,
	}
}

// Coordinate returns the (col, row) of an object id that is currently on a
// stack, or FloorCoordinate if id == world.Floor. It returns false if id is
// held or does not appear in any stack.
func (s *Snapshot) Coordinate(id string) (Coordinate, bool) {
	if id == Floor {
		return FloorCoordinate, true
	}
	for col, stack := range s.Stacks {
		for row, objID := range stack {
			if objID == id {
				return Coordinate{Col: col, Row: row}, true
			}
		}
	}
	return Coordinate{}, false
}

// Top returns the id on top of the given column and whether the column is
// non-empty.
func (s *Snapshot) Top(col int) (string, bool) {
	stack := s.Stacks[col]
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1], true
}

// CountAbove returns the number of objects stacked on top of id (0 if id is
// on top of its stack, held, or not found). This is the "nX" quantity used
// throughout the planner's heuristic estimates.
func (s *Snapshot) CountAbove(id string) int {
	coord, ok := s.Coordinate(id)
	if !ok || id == Floor {
		return 0
	}
	return len(s.Stacks[coord.Col]) - coord.Row - 1
}

// Present reports whether id is on a stack or currently held.
func (s *Snapshot) Present(id string) bool {
	if s.Holding == id {
		return true
	}
	_, ok := s.Coordinate(id)
	return ok
}

// CanonicalID renders a deterministic string identity for the snapshot, used
// as the single chokepoint for revisit detection during search:
// "<arm>,<holdingOrNull>,[[id,id],[...],...]" with literal commas, stacks
// listed in column order, bottom-to-top inside each bracket.
func (s *Snapshot) CanonicalID() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d,", s.Arm)
	if s.Holding == "" {
		b.WriteString("null")
	} else {
		b.WriteString(s.Holding)
	}
	b.WriteByte(',')
	b.WriteByte('[')
	for i, stack := range s.Stacks {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		for j, id := range stack {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(id)
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

// Validate checks that the multiset {holding} ⊎ ⋃ stacks equals the set of
// active object ids, with no id appearing twice. It is a debug-only helper
// exercised by tests, not the hot path.
func (s *Snapshot) Validate() error {
	seen := make(map[string]string) // id -> where found
	note := func(id, where string) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("world: object %q appears twice (%s and %s)", id, prev, where)
		}
		seen[id] = where
		return nil
	}
	if s.Holding != "" {
		if err := note(s.Holding, "holding"); err != nil {
			return err
		}
	}
	for col, stack := range s.Stacks {
		for row, id := range stack {
			if err := note(id, fmt.Sprintf("stack %d row %d", col, row)); err != nil {
				return err
			}
		}
	}
	if s.Arm < 0 || s.Arm >= len(s.Stacks) {
		return fmt.Errorf("world: arm column %d out of range [0,%d)", s.Arm, len(s.Stacks))
	}
	for id := range seen {
		if id == Floor {
			continue
		}
		if _, ok := s.Catalogue.Describe(id); !ok {
			return fmt.Errorf("world: object %q is not in the catalogue", id)
		}
	}
	return nil
}
