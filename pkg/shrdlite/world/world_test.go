package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

func newCatalogue() *world.Catalogue {
	return world.NewCatalogue(map[string]world.Description{
		"a": {Form: "brick", Size: "large", Color: "green"},
		"b": {Form: "ball", Size: "small", Color: "white"},
		"c": {Form: "box", Size: "large", Color: "blue"},
	})
}

func TestCatalogueIndexes(t *testing.T) {
	cat := newCatalogue()

	assert.ElementsMatch(t, []string{"a"}, cat.ByForm("brick"))
	assert.ElementsMatch(t, []string{"b"}, cat.BySize("small"))
	assert.ElementsMatch(t, []string{"c"}, cat.ByColor("blue"))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, cat.AllIDs())

	d, ok := cat.Describe("b")
	require.True(t, ok)
	assert.Equal(t, world.Description{Form: "ball", Size: "small", Color: "white"}, d)

	_, ok = cat.Describe("missing")
	assert.False(t, ok)
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	cat := newCatalogue()
	snap := &world.Snapshot{
		Stacks:    [][]string{{"a"}, {"b", "c"}},
		Arm:       0,
		Catalogue: cat,
	}
	clone := snap.Clone()
	clone.Stacks[0] = append(clone.Stacks[0], "x")

	assert.Len(t, snap.Stacks[0], 1, "mutating the clone must not affect the original")
	assert.Same(t, cat, clone.Catalogue, "catalogue must be shared, not cloned")
}

func TestSnapshotCoordinateAndTop(t *testing.T) {
	cat := newCatalogue()
	snap := &world.Snapshot{
		Stacks:    [][]string{{"a"}, {"b", "c"}},
		Arm:       1,
		Catalogue: cat,
	}

	coord, ok := snap.Coordinate("c")
	require.True(t, ok)
	assert.Equal(t, world.Coordinate{Col: 1, Row: 1}, coord)

	coord, ok = snap.Coordinate(world.Floor)
	require.True(t, ok)
	assert.Equal(t, world.FloorCoordinate, coord)

	top, ok := snap.Top(1)
	require.True(t, ok)
	assert.Equal(t, "c", top)

	assert.Equal(t, 0, snap.CountAbove("c"))
	assert.Equal(t, 1, snap.CountAbove("b"))
}

func TestSnapshotCanonicalID(t *testing.T) {
	cat := newCatalogue()
	s1 := &world.Snapshot{Stacks: [][]string{{"a"}, {"b", "c"}}, Arm: 0, Catalogue: cat}
	s2 := &world.Snapshot{Stacks: [][]string{{"a"}, {"b", "c"}}, Arm: 0, Catalogue: cat}
	s3 := &world.Snapshot{Stacks: [][]string{{"a"}, {"b", "c"}}, Arm: 0, Holding: "x", Catalogue: cat}

	assert.Equal(t, s1.CanonicalID(), s2.CanonicalID())
	assert.NotEqual(t, s1.CanonicalID(), s3.CanonicalID())
	assert.Equal(t, "0,null,[[a],[b,c]]", s1.CanonicalID())
}

func TestSnapshotValidate(t *testing.T) {
	cat := newCatalogue()

	ok := &world.Snapshot{Stacks: [][]string{{"a"}, {"b", "c"}}, Arm: 0, Catalogue: cat}
	assert.NoError(t, ok.Validate())

	dup := &world.Snapshot{Stacks: [][]string{{"a"}, {"a", "c"}}, Arm: 0, Catalogue: cat}
	assert.Error(t, dup.Validate())

	held := &world.Snapshot{Stacks: [][]string{{"a"}, {"c"}}, Arm: 0, Holding: "a", Catalogue: cat}
	assert.Error(t, held.Validate(), "a held id must not also appear on a stack")

	badArm := &world.Snapshot{Stacks: [][]string{{"a"}}, Arm: 5, Catalogue: cat}
	assert.Error(t, badArm.Validate())
}
