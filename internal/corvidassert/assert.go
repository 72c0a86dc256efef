//go:build !debug

// Package corvidassert offers a zero-cost-in-release assertion helper used
// to document invariants in hot paths (magic index lookup, move generation)
// without paying for the check in normal builds. Build with -tags debug to
// make Assert actually evaluate and panic.
package corvidassert

// Debug reports whether assertions are compiled to do anything. It is a
// const so the compiler can dead-code-eliminate call sites guarded by
// `if corvidassert.Debug { ... }`.
const Debug = false

// Assert is a no-op in release builds. Callers that construct an expensive
// message should still guard the call with `if corvidassert.Debug`, since Go
// evaluates arguments before the call.
func Assert(test bool, msg string, a ...interface{}) {}
