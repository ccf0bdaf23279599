package interpreter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/ast"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/interpreter"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// smallWorld mirrors the fixture documented in resolver_test.go; duplicated
// per-package since catalogues are external to the core .
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

func blue() *ast.SimpleObject { return &ast.SimpleObject{Form: ast.FormAny, Color: ast.ColorBlue} }

// "Take a blue object" with two blue candidates in the world.
func TestInterpretTakeBlueObject(t *testing.T) {
	cmd := &ast.TakeCommand{Entity: &ast.Entity{Quantifier: ast.QuantAny, Object: blue()}}
	results, err := interpreter.Interpret([]ast.ParseResult{{Command: cmd}}, smallWorld())
	require.NoError(t, err)
	require.Len(t, results, 1)

	f := results[0].DNF
	assert.Len(t, f, 2)
	ids := map[string]bool{}
	for _, c := range f {
		require.Len(t, c, 1)
		assert.True(t, c[0].IsUnary())
		ids[c[0].A] = true
	}
	assert.Equal(t, map[string]bool{"t": true, "k": true}, ids)
}

// Scenario 3: "take a white object beside a blue object".
func TestInterpretTakeWhiteBesideBlue(t *testing.T) {
	white := &ast.RelativeObject{
		Object: &ast.SimpleObject{Form: ast.FormAny, Color: ast.ColorWhite},
		Location: &ast.Location{
			Relation: ast.RelBeside,
			Entity:   &ast.Entity{Quantifier: ast.QuantAny, Object: blue()},
		},
	}
	cmd := &ast.TakeCommand{Entity: &ast.Entity{Quantifier: ast.QuantAny, Object: white}}
	results, err := interpreter.Interpret([]ast.ParseResult{{Command: cmd}}, smallWorld())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].DNF, 1)
	assert.Equal(t, "w", results[0].DNF[0][0].A)
}

// Scenario 4: "put all balls on the floor".
func TestInterpretMoveAllBallsOnFloor(t *testing.T) {
	cmd := &ast.MoveCommand{
		Entity:   &ast.Entity{Quantifier: ast.QuantAll, Object: &ast.SimpleObject{Form: ast.FormBall}},
		Location: &ast.Location{Relation: ast.RelOnTop, Entity: &ast.Entity{Quantifier: ast.QuantTheOne, Object: &ast.SimpleObject{Form: ast.FormFloor}}},
	}
	results, err := interpreter.Interpret([]ast.ParseResult{{Command: cmd}}, smallWorld())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].DNF, 1)
	assert.Len(t, results[0].DNF[0], 2)
}

// Boundary: "take the floor" -> error.
func TestInterpretTakeFloorIsError(t *testing.T) {
	cmd := &ast.TakeCommand{Entity: &ast.Entity{Quantifier: ast.QuantAny, Object: &ast.SimpleObject{Form: ast.FormFloor}}}
	_, err := interpreter.Interpret([]ast.ParseResult{{Command: cmd}}, smallWorld())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floor")
}

// Boundary: dropping while not holding anything -> error.
func TestInterpretDropWithoutHoldingIsError(t *testing.T) {
	cmd := &ast.DropCommand{Location: &ast.Location{Relation: ast.RelOnTop, Entity: &ast.Entity{Quantifier: ast.QuantTheOne, Object: &ast.SimpleObject{Form: ast.FormFloor}}}}
	_, err := interpreter.Interpret([]ast.ParseResult{{Command: cmd}}, smallWorld())
	require.Error(t, err)
}

// Boundary: "put a large box in a small box" -> error.
func TestInterpretLargeBoxInSmallBoxIsError(t *testing.T) {
	cmd := &ast.MoveCommand{
		Entity:   &ast.Entity{Quantifier: ast.QuantAny, Object: &ast.SimpleObject{Form: ast.FormBox, Size: ast.SizeLarge}},
		Location: &ast.Location{Relation: ast.RelInside, Entity: &ast.Entity{Quantifier: ast.QuantAny, Object: &ast.SimpleObject{Form: ast.FormBox, Size: ast.SizeSmall}}},
	}
	_, err := interpreter.Interpret([]ast.ParseResult{{Command: cmd}}, smallWorld())
	require.Error(t, err)
}

// One parse failing must not abort the others; the successful one still
// surfaces.
func TestInterpretPartialFailureStillSucceeds(t *testing.T) {
	bad := &ast.TakeCommand{Entity: &ast.Entity{Quantifier: ast.QuantAny, Object: &ast.SimpleObject{Form: ast.FormFloor}}}
	good := &ast.TakeCommand{Entity: &ast.Entity{Quantifier: ast.QuantAny, Object: blue()}}
	results, err := interpreter.Interpret([]ast.ParseResult{{Command: bad}, {Command: good}}, smallWorld())
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestInterpretIdempotence(t *testing.T) {
	cmd := &ast.MoveCommand{
		Entity:   &ast.Entity{Quantifier: ast.QuantAny, Object: &ast.SimpleObject{Form: ast.FormBall}},
		Location: &ast.Location{Relation: ast.RelInside, Entity: &ast.Entity{Quantifier: ast.QuantAny, Object: &ast.SimpleObject{Form: ast.FormBox}}},
	}
	snap := smallWorld()
	r1, err1 := interpreter.Interpret([]ast.ParseResult{{Command: cmd}}, snap)
	r2, err2 := interpreter.Interpret([]ast.ParseResult{{Command: cmd}}, snap)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, r1[0].DNF.Equal(r2[0].DNF))
}
