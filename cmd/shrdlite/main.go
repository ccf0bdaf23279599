// Command shrdlite is a fixture-driven smoke-test harness for the
// interpreter and planner entry points. It is not a natural-language shell:
// it reads a world snapshot and a single flattened command description from
// JSON files and drives pkg/shrdlite/interpreter and pkg/shrdlite/planner
// directly.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/ast"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/interpreter"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/planner"
	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "shrdlite",
		Short: "Drive the blocks-world interpreter and planner against a JSON world fixture",
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "emit debug-level search/interpretation diagnostics")

	root.AddCommand(newInterpretCommand(&verbose), newPlanCommand(&verbose))
	return root
}

func newInterpretCommand(verbose *bool) *cobra.Command {
	var worldPath, commandPath string

	cmd := &cobra.Command{
		Use:   "interpret",
		Short: "Resolve a command fixture against a world fixture and print its DNF goal(s)",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadWorld(worldPath)
			if err != nil {
				return err
			}
			parses, err := loadParses(commandPath)
			if err != nil {
				return err
			}

			results, err := interpreter.Interpret(parses, snap, interpreter.WithLogger(logger(*verbose)))
			if err != nil {
				return err
			}
			for i, r := range results {
				fmt.Printf("parse %d: %s\n", i, r.Parse.Command)
				for _, conj := range r.DNF {
					fmt.Printf("  %s\n", conj)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&worldPath, "world", "", "path to a world fixture JSON file")
	cmd.Flags().StringVar(&commandPath, "command", "", "path to a command fixture JSON file")
	cmd.MarkFlagRequired("world")
	cmd.MarkFlagRequired("command")
	return cmd
}

func newPlanCommand(verbose *bool) *cobra.Command {
	var worldPath, commandPath string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Interpret a command fixture and search for a plan, printing the action string",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadWorld(worldPath)
			if err != nil {
				return err
			}
			parses, err := loadParses(commandPath)
			if err != nil {
				return err
			}

			interpretations, err := interpreter.Interpret(parses, snap, interpreter.WithLogger(logger(*verbose)))
			if err != nil {
				return err
			}
			planned, err := planner.Plan(interpretations, snap,
				planner.WithTimeout(timeout),
				planner.WithLogger(logger(*verbose)),
			)
			if err != nil {
				return err
			}
			for i, p := range planned {
				fmt.Printf("parse %d: %s  (cost=%d, nodes_seen=%d)\n", i, p.Plan, p.Stats.Cost, p.Stats.NodesSeen)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&worldPath, "world", "", "path to a world fixture JSON file")
	cmd.Flags().StringVar(&commandPath, "command", "", "path to a command fixture JSON file")
	cmd.Flags().DurationVar(&timeout, "timeout", planner.DefaultTimeout, "wall-clock search deadline per parse")
	cmd.MarkFlagRequired("world")
	cmd.MarkFlagRequired("command")
	return cmd
}

func logger(verbose bool) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{Name: "shrdlite", Level: level})
}

// worldFixture is the on-disk shape of a world snapshot. Objects not
// mentioned in Stacks or Holding are catalogue entries only and never
// resolve to anything present.
type worldFixture struct {
	Objects map[string]objectFixture `json:"objects"`
	Stacks  [][]string               `json:"stacks"`
	Arm     int                      `json:"arm"`
	Holding string                   `json:"holding"`
}

type objectFixture struct {
	Form  string `json:"form"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

func loadWorld(path string) (*world.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world fixture: %w", err)
	}
	var wf worldFixture
	if err := json.Unmarshal(raw, &wf); err != nil {
		return nil, fmt.Errorf("parsing world fixture: %w", err)
	}

	objects := make(map[string]world.Description, len(wf.Objects))
	for id, o := range wf.Objects {
		objects[id] = world.Description{Form: o.Form, Size: o.Size, Color: o.Color}
	}
	snap := &world.Snapshot{
		Stacks:    wf.Stacks,
		Arm:       wf.Arm,
		Holding:   wf.Holding,
		Catalogue: world.NewCatalogue(objects),
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("world fixture failed validation: %w", err)
	}
	return snap, nil
}

// commandFixture is a flattened, non-recursive stand-in for the full
// ast.ObjectDesc tree: the entity and the location's target are each a
// SimpleObject; relative and complex descriptions cannot be expressed. It
// exists to drive the
// interpreter/planner entry points from a file, not to express every
// sentence the full grammar could parse.
type commandFixture struct {
	Verb     string           `json:"verb"` // "take" | "drop" | "move"
	Entity   *entityFixture   `json:"entity,omitempty"`
	Location *locationFixture `json:"location,omitempty"`
}

type entityFixture struct {
	Quantifier string `json:"quantifier"`
	Form       string `json:"form"`
	Size       string `json:"size"`
	Color      string `json:"color"`
}

type locationFixture struct {
	Relation string         `json:"relation"`
	Entity   *entityFixture `json:"entity"`
}

func loadParses(path string) ([]ast.ParseResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading command fixture: %w", err)
	}
	var fixtures []commandFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("parsing command fixture: %w", err)
	}

	parses := make([]ast.ParseResult, 0, len(fixtures))
	for _, f := range fixtures {
		cmd, err := toCommand(f)
		if err != nil {
			return nil, err
		}
		parses = append(parses, ast.ParseResult{Command: cmd})
	}
	return parses, nil
}

func toCommand(f commandFixture) (ast.Command, error) {
	switch f.Verb {
	case "take":
		if f.Entity == nil {
			return nil, fmt.Errorf("take command requires an entity")
		}
		return &ast.TakeCommand{Entity: toEntity(f.Entity)}, nil
	case "drop":
		if f.Location == nil {
			return nil, fmt.Errorf("drop command requires a location")
		}
		return &ast.DropCommand{Location: toLocation(f.Location)}, nil
	case "move":
		if f.Entity == nil || f.Location == nil {
			return nil, fmt.Errorf("move command requires both an entity and a location")
		}
		return &ast.MoveCommand{Entity: toEntity(f.Entity), Location: toLocation(f.Location)}, nil
	default:
		return nil, fmt.Errorf("unrecognized command verb %q", f.Verb)
	}
}

func toEntity(e *entityFixture) *ast.Entity {
	form := ast.Form(e.Form)
	if form == "" {
		form = ast.FormAny
	}
	return &ast.Entity{
		Quantifier: ast.Quantifier(e.Quantifier),
		Object: &ast.SimpleObject{
			Form:  form,
			Size:  ast.Size(e.Size),
			Color: ast.Color(e.Color),
		},
	}
}

func toLocation(l *locationFixture) *ast.Location {
	return &ast.Location{
		Relation: ast.Relation(l.Relation),
		Entity:   toEntity(l.Entity),
	}
}
