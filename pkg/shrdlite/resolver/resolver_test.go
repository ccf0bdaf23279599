package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/ast"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/resolver"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// smallWorld builds an illustrative five-object world used across this
// package's tests. It exists purely to exercise the resolver, not as a
// published catalogue.
//
// Layout (column: id -> description):
//
//	0: t -> table, large, blue
//	1: k -> box,   small, blue
//	2: w -> ball,  large, white
//	3: z -> ball,  small, black
//	4: i -> box,   large, yellow
func smallWorld() *world.Snapshot {
	cat := world.NewCatalogue(map[string]world.Description{
		"t": {Form: "table", Size: "large", Color: "blue"},
		"k": {Form: "box", Size: "small", Color: "blue"},
		"w": {Form: "ball", Size: "large", Color: "white"},
		"z": {Form: "ball", Size: "small", Color: "black"},
		"i": {Form: "box", Size: "large", Color: "yellow"},
	})
	return &world.Snapshot{
		Stacks:    [][]string{{"t"}, {"k"}, {"w"}, {"z"}, {"i"}},
		Arm:       0,
		Catalogue: cat,
	}
}

func TestResolveSimpleObjectByColor(t *testing.T) {
	r := resolver.New(smallWorld())
	ids := r.Resolve(&ast.SimpleObject{Form: ast.FormAny, Color: ast.ColorBlue})
	assert.ElementsMatch(t, []string{"t", "k"}, ids.Slice())
}

func TestResolveSimpleObjectFloor(t *testing.T) {
	r := resolver.New(smallWorld())
	ids := r.Resolve(&ast.SimpleObject{Form: ast.FormFloor})
	assert.Equal(t, []string{"floor"}, ids.Slice())
}

func TestResolveSimpleObjectFormAndSize(t *testing.T) {
	r := resolver.New(smallWorld())
	ids := r.Resolve(&ast.SimpleObject{Form: ast.FormBall, Size: ast.SizeSmall})
	assert.Equal(t, []string{"z"}, ids.Slice())
}

func TestResolveRelativeObjectBeside(t *testing.T) {
	// "a white object beside a blue object" -> only w qualifies (column 2,
	// adjacent to column 1's blue box).
	r := resolver.New(smallWorld())
	desc := &ast.RelativeObject{
		Object: &ast.SimpleObject{Form: ast.FormAny, Color: ast.ColorWhite},
		Location: &ast.Location{
			Relation: ast.RelBeside,
			Entity:   &ast.Entity{Quantifier: ast.QuantAny, Object: &ast.SimpleObject{Form: ast.FormAny, Color: ast.ColorBlue}},
		},
	}
	ids := r.Resolve(desc)
	assert.Equal(t, []string{"w"}, ids.Slice())
}

func TestResolveRelativeObjectQuantifierAll(t *testing.T) {
	snap := smallWorld()
	r := resolver.New(snap)
	// The yellow box i (column 4) with "all blue objects" beside it: the
	// blue objects are t (column 0) and k (column 1), and neither is
	// adjacent to column 4, so i does not qualify.
	desc := &ast.RelativeObject{
		Object: &ast.SimpleObject{Form: ast.FormBox, Color: ast.ColorYellow},
		Location: &ast.Location{
			Relation: ast.RelBeside,
			Entity:   &ast.Entity{Quantifier: ast.QuantAll, Object: &ast.SimpleObject{Form: ast.FormAny, Color: ast.ColorBlue}},
		},
	}
	ids := r.Resolve(desc)
	assert.Empty(t, ids.Slice())
}

func TestResolveComplexOr(t *testing.T) {
	r := resolver.New(smallWorld())
	desc := &ast.ComplexObject{
		Object1:  &ast.SimpleObject{Form: ast.FormBall},
		Object2:  &ast.SimpleObject{Form: ast.FormTable},
		Operator: ast.OpOr,
	}
	assert.ElementsMatch(t, []string{"w", "z", "t"}, r.Resolve(desc).Slice())
}

func TestResolveComplexExcept(t *testing.T) {
	r := resolver.New(smallWorld())
	desc := &ast.ComplexObject{
		Object1:  &ast.SimpleObject{Form: ast.FormAny, Color: ast.ColorBlue},
		Object2:  &ast.SimpleObject{Form: ast.FormBox},
		Operator: ast.OpExcept,
	}
	assert.Equal(t, []string{"t"}, r.Resolve(desc).Slice())
}

func TestResolveMemoizesByNodeIdentity(t *testing.T) {
	r := resolver.New(smallWorld())
	desc := &ast.SimpleObject{Form: ast.FormBall}
	first := r.Resolve(desc)
	second := r.Resolve(desc)
	assert.Equal(t, first.Slice(), second.Slice())
}

func TestPositionalOntopFloor(t *testing.T) {
	snap := smallWorld()
	assert.True(t, resolver.Positional(snap, ast.RelOnTop, "t", world.Floor))
	assert.False(t, resolver.Positional(snap, ast.RelOnTop, "z", "t"))
}

func TestPositionalLeftRight(t *testing.T) {
	snap := smallWorld()
	assert.True(t, resolver.Positional(snap, ast.RelLeftOf, "t", "k"))
	assert.True(t, resolver.Positional(snap, ast.RelRightOf, "k", "t"))
	assert.False(t, resolver.Positional(snap, ast.RelLeftOf, "k", "t"))
}
