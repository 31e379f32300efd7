// SPDX-License-Identifier: MIT

// Package reach answers which compounds and reactions of a network are
// connected to its medium. A breadth-first search over the directed
// compound/reaction graph starts from the compounds of non-steady
// compartments (or explicit sources) and from reactions that need no
// input; anything it never visits cannot carry flux that originates in the
// medium.
//
// Connectivity is a necessary condition only: a reaction reached through
// one substrate may still be blocked by another.
package reach

import (
	"fmt"
	"slices"
)

type queueItem struct {
	node   Node
	depth  int
	parent Node
	root   bool
}

// Result holds the outcome of a search.
//   - Order: nodes in visit sequence.
//   - Depth: edges from the nearest seed.
//   - Parent: predecessor in the search tree; seeds have none.
type Result struct {
	Order  []Node
	Depth  map[Node]int
	Parent map[Node]Node

	graph *Graph
}

type walker struct {
	graph *Graph
	opts  Options
	queue []queueItem
	res   *Result
}

// Search runs a multi-source breadth-first search over g.
//
// Stage 1 (Validate): apply options, resolve sources.
// Stage 2 (Execute): visit level by level in insertion order, honouring
// Skip, MaxDepth and cancellation.
//
// Complexity: O(V + E).
func Search(g *Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilNetwork
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	seeds := g.seeds
	if len(o.Sources) > 0 {
		for _, id := range o.Sources {
			if !g.compounds[id] {
				return nil, fmt.Errorf("%w: %q", ErrUnknownSource, id)
			}
		}
		seeds = o.Sources
	}

	n := len(g.nodes)
	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order:  make([]Node, 0, n),
			Depth:  make(map[Node]int, n),
			Parent: make(map[Node]Node, n),
			graph:  g,
		},
	}
	for _, id := range seeds {
		w.enqueue(queueItem{node: Node{Kind: Compound, ID: id}, root: true})
	}
	for _, r := range g.sources {
		if !o.Skip(r.ID) {
			w.enqueue(queueItem{node: r, root: true})
		}
	}

	return w.res, w.loop()
}

func (w *walker) enqueue(it queueItem) {
	if _, seen := w.res.Depth[it.node]; seen {
		return
	}
	w.res.Depth[it.node] = it.depth
	if !it.root {
		w.res.Parent[it.node] = it.parent
	}
	w.queue = append(w.queue, it)
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		it := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, it.node)
		if err := w.opts.OnVisit(it.node, it.depth); err != nil {
			return fmt.Errorf("reach: OnVisit error at %s: %w", it.node, err)
		}

		next := it.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, nb := range w.graph.out[it.node] {
			if nb.Kind == Reaction && w.opts.Skip(nb.ID) {
				continue
			}
			w.enqueue(queueItem{node: nb, depth: next, parent: it.node})
		}
	}

	return nil
}

// Reached reports whether the search visited n.
func (r *Result) Reached(n Node) bool {
	_, ok := r.Depth[n]
	return ok
}

// Unreached lists compound and reaction ids the search never visited, in
// network order.
func (r *Result) Unreached() (compounds, reactions []string) {
	for _, n := range r.graph.nodes {
		if r.Reached(n) {
			continue
		}
		if n.Kind == Compound {
			compounds = append(compounds, n.ID)
		} else {
			reactions = append(reactions, n.ID)
		}
	}

	return compounds, reactions
}

// PathTo reconstructs the path from the nearest seed to dest.
func (r *Result) PathTo(dest Node) ([]Node, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %s", ErrNotReached, dest)
	}
	path := []Node{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	slices.Reverse(path)

	return path, nil
}
