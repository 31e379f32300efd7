// SPDX-License-Identifier: MIT

package reach

import "github.com/katalvlaran/metatwin/network"

// Graph is the directed compound/reaction graph of a network. A reaction
// that can run forward links its substrates to itself and itself to its
// products; one that can run backward links the other way. Reactions fixed
// at [0,0] have no edges.
type Graph struct {
	nodes     []Node
	out       map[Node][]Node
	compounds map[string]bool
	seeds     []string // compounds of non-steady compartments
	sources   []Node   // reactions with no input in any open direction
}

// Build derives the graph of n. The graph is a snapshot; later changes to n
// are not reflected.
//
// Complexity: O(Σ|terms|).
func Build(n *network.Network) (*Graph, error) {
	if n == nil {
		return nil, ErrNilNetwork
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	g := &Graph{out: make(map[Node][]Node), compounds: make(map[string]bool)}
	steady := make(map[string]bool)
	for _, c := range n.Compartments() {
		steady[c.ID] = c.IsSteady
	}
	for _, c := range n.Compounds() {
		node := Node{Kind: Compound, ID: c.ID}
		g.nodes = append(g.nodes, node)
		g.compounds[c.ID] = true
		if !steady[c.Compartment] {
			g.seeds = append(g.seeds, c.ID)
		}
	}
	for _, r := range n.Reactions() {
		rn := Node{Kind: Reaction, ID: r.ID}
		g.nodes = append(g.nodes, rn)
		inputs := 0
		for _, t := range r.Terms() {
			cn := Node{Kind: Compound, ID: t.Compound}
			// forward flux consumes negative coefficients
			if r.Upper > 0 {
				inputs += g.direct(t.Coefficient < 0, cn, rn)
			}
			if r.Lower < 0 {
				inputs += g.direct(t.Coefficient > 0, cn, rn)
			}
		}
		if inputs == 0 && (r.Upper > 0 || r.Lower < 0) {
			g.sources = append(g.sources, rn)
		}
	}

	return g, nil
}

// direct adds c→r when consumed, else r→c; it returns 1 for an input edge.
func (g *Graph) direct(consumed bool, c, r Node) int {
	if consumed {
		g.link(c, r)
		return 1
	}
	g.link(r, c)
	return 0
}

func (g *Graph) link(from, to Node) {
	for _, x := range g.out[from] {
		if x == to {
			return
		}
	}
	g.out[from] = append(g.out[from], to)
}

// Nodes returns every node, compounds first, each group in network order.
func (g *Graph) Nodes() []Node { return append([]Node(nil), g.nodes...) }

// Successors returns the out-neighbours of n in insertion order.
func (g *Graph) Successors(n Node) []Node { return append([]Node(nil), g.out[n]...) }

// Seeds returns the default source compounds.
func (g *Graph) Seeds() []string { return append([]string(nil), g.seeds...) }
