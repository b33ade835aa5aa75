// Copyright 2026 SpecForm Authors
// Use of this source code is governed by the project license.

/*
Package render turns a spec into the compact pseudo-typed schema block
embedded in a model prompt.

Output is deterministic for a given spec: hoisted reference blocks first,
then inlined anonymous blocks, then the main block, with namespace children
sorted lexicographically. Shared sub-schemas hoist to a single named block
to bound prompt size; TokenEstimate reports what a rendered block costs
against that budget.
*/
package render
