// SPDX-License-Identifier: MIT

// Package jsonio reads and writes networks, contexts, twins and solver
// results as JSON documents.
//
// Unbounded values are encoded as null: a null lower bound is −Inf, a
// null upper bound is +Inf, a null result value is NaN (no optimum).
// Reaction bounds left null take the defaults of the reaction direction.
// Encoding goes through gnfmt.GNjson.
package jsonio
