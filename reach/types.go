// SPDX-License-Identifier: MIT

package reach

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for reachability searches.
var (
	// ErrNilNetwork is returned when Build receives a nil network.
	ErrNilNetwork = errors.New("reach: network is nil")

	// ErrUnknownSource is returned when a source compound is absent.
	ErrUnknownSource = errors.New("reach: source compound not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reach: invalid option supplied")

	// ErrNotReached is returned by PathTo for a node outside the search.
	ErrNotReached = errors.New("reach: node not reached")
)

// Kind tells compound nodes from reaction nodes.
type Kind int

const (
	// Compound nodes are metabolites.
	Compound Kind = iota
	// Reaction nodes are conversions.
	Reaction
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Reaction {
		return "reaction"
	}
	return "compound"
}

// Node is one vertex of the bipartite graph. Compound and reaction ids may
// coincide, so the kind is part of the identity.
type Node struct {
	Kind Kind
	ID   string
}

// String implements fmt.Stringer.
func (n Node) String() string { return n.Kind.String() + " " + n.ID }

// Option configures a search via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters of one search.
type Options struct {
	// Ctx allows cancellation.
	Ctx context.Context

	// Sources replaces the default seeds (compounds of non-steady
	// compartments) when non-empty.
	Sources []string

	// MaxDepth, if > 0, stops exploring beyond this many edges.
	MaxDepth int

	// OnVisit is called for every visited node; an error aborts the search.
	OnVisit func(n Node, depth int) error

	// Skip drops reactions from the graph for this search, e.g. a knockout.
	Skip func(reactionID string) bool

	err error
}

// DefaultOptions returns an unbounded search from the default seeds.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(Node, int) error { return nil },
		Skip:    func(string) bool { return false },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSources seeds the search with the given compound ids.
func WithSources(ids ...string) Option {
	return func(o *Options) {
		o.Sources = append([]string(nil), ids...)
	}
}

// WithMaxDepth limits the search depth.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnVisit registers a visit callback.
func WithOnVisit(fn func(n Node, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithSkip removes the reactions for which fn returns true.
func WithSkip(fn func(reactionID string) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.Skip = fn
		}
	}
}
