// astar.go implements a generic A* engine: a min-priority frontier keyed by
// f = g + h, a bestF table permitting re-opening (the heuristic is
// admissible but not consistent), a wall-clock deadline checked between
// dequeues and between expansions, and path reconstruction by walking
// parent pointers.
//
// The search loop is iterative rather than recursive: no goroutines, a
// context.Context checked at each step, and a frontier of plain Go values.
package planner

import (
	"container/heap"
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/shrdlite-core/pkg/shrdlite/world"
)

// Status is the terminal outcome of an A* search.
type Status int

const (
	StatusSuccess Status = iota
	StatusTimeout
	StatusFailure
)

// Result is the outcome of a single A* search.
type Result struct {
	Status    Status
	Actions   []Action
	Cost      int
	NodesSeen int
}

// frontierEntry is one entry in the min-priority frontier.
type frontierEntry struct {
	id    string
	snap  *world.Snapshot
	g     int
	f     int
	index int // heap.Interface bookkeeping
}

// parentLink records, per node id, the predecessor id and the action taken
// to reach it, for path reconstruction.
type parentLink struct {
	id     string
	action Action
}

type frontier []*frontierEntry

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	// Ordering among equal-f frontier entries is otherwise unspecified;
	// breaking ties on id keeps behavior deterministic for tests without
	// claiming any particular tie-break is meaningful.
	return f[i].id < f[j].id
}
func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}
func (f *frontier) Push(x any) {
	e := x.(*frontierEntry)
	e.index = len(*f)
	*f = append(*f, e)
}
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return e
}

// GoalTest decides whether a snapshot satisfies the search's goal.
type GoalTest func(*world.Snapshot) bool

// HeuristicFunc estimates the remaining cost from a snapshot.
type HeuristicFunc func(*world.Snapshot) int

// SearchOption configures Search using the standard functional-options
// idiom.
type SearchOption func(*searchConfig)

type searchConfig struct {
	timeout time.Duration
	logger  hclog.Logger
}

// WithSearchTimeout sets the wall-clock search deadline. The zero value
// means no deadline.
func WithSearchTimeout(d time.Duration) SearchOption {
	return func(c *searchConfig) { c.timeout = d }
}

// WithSearchLogger attaches a logger for debug-level search diagnostics.
func WithSearchLogger(l hclog.Logger) SearchOption {
	return func(c *searchConfig) { c.logger = l }
}

// Search runs A* from start until goal is satisfied, the deadline elapses,
// or the frontier empties.
func Search(start *world.Snapshot, goal GoalTest, h HeuristicFunc, opts ...SearchOption) Result {
	cfg := &searchConfig{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if cfg.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	startID := start.CanonicalID()
	bestF := map[string]int{startID: h(start)}
	parents := map[string]parentLink{}
	nodesSeen := map[string]struct{}{startID: {}}

	fr := &frontier{{id: startID, snap: start, g: 0, f: h(start)}}
	heap.Init(fr)

	for fr.Len() > 0 {
		if err := ctx.Err(); err != nil {
			cfg.logger.Debug("search timed out", "nodes_seen", len(nodesSeen))
			return Result{Status: StatusTimeout, NodesSeen: len(nodesSeen)}
		}

		cur := heap.Pop(fr).(*frontierEntry)
		if cur.f > bestF[cur.id] {
			// Stale entry superseded by a better re-open; skip.
			continue
		}

		if goal(cur.snap) {
			return Result{
				Status:    StatusSuccess,
				Actions:   reconstructPath(cur.id, parents),
				Cost:      cur.g,
				NodesSeen: len(nodesSeen),
			}
		}

		for _, succ := range Successors(cur.snap) {
			if err := ctx.Err(); err != nil {
				cfg.logger.Debug("search timed out mid-expansion", "nodes_seen", len(nodesSeen))
				return Result{Status: StatusTimeout, NodesSeen: len(nodesSeen)}
			}
			childID := succ.Child.CanonicalID()
			g2 := cur.g + succ.Cost
			f2 := g2 + h(succ.Child)

			nodesSeen[childID] = struct{}{}
			if best, ok := bestF[childID]; !ok || f2 < best {
				bestF[childID] = f2
				parents[childID] = parentLink{
					id:     cur.id,
					action: succ.Action,
				}
				heap.Push(fr, &frontierEntry{
					id:   childID,
					snap: succ.Child,
					g:    g2,
					f:    f2,
				})
			}
		}
	}

	cfg.logger.Debug("search exhausted frontier", "nodes_seen", len(nodesSeen))
	return Result{Status: StatusFailure, NodesSeen: len(nodesSeen)}
}

// reconstructPath walks parent pointers from goalID back to the start
// (whose id has no entry in parents) and reverses the result.
func reconstructPath(goalID string, parents map[string]parentLink) []Action {
	var reversed []Action
	cur := goalID
	for {
		p, ok := parents[cur]
		if !ok {
			break
		}
		reversed = append(reversed, p.action)
		cur = p.id
	}
	actions := make([]Action, len(reversed))
	for i, a := range reversed {
		actions[len(reversed)-1-i] = a
	}
	return actions
}

// ActionsToString renders a slice of Action as the single-character action
// string defines.
func ActionsToString(actions []Action) string {
	b := make([]byte, len(actions))
	for i, a := range actions {
		b[i] = byte(a)
	}
	return string(b)
}
