// Package hosttest provides an in-memory implementation of hostabi.Host.
//
// It stands in for a live zsh during tests and in the zmodrun developer
// tool: a Go-backed allocator that keeps every outstanding block alive, a
// parameter table of real hash nodes, a hook table with typed callback
// lists, and feature negotiation that renders the same b:/c:/f:/p: prefixed
// name array a real shell produces.
//
// The host records what was asked of it: allocation and free counts, node
// lookups per parameter name, and executed scripts, so tests can assert on the
// traffic that crossed the boundary, not just on end results.
package hosttest
