// SPDX-License-Identifier: MIT

package numeric

import "context"

// Backend solves linear and convex quadratic programs.
//
// Implementations must be safe for concurrent use, must not retain or
// mutate p, and must report solver outcomes (including cancellation and
// limits) through Solution.Status. The error return is reserved for
// malformed problems.
type Backend interface {
	SolveLinear(ctx context.Context, p *Problem) (*Solution, error)
	SolveQuadratic(ctx context.Context, p *Problem) (*Solution, error)
}
