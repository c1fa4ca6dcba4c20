// Package secret provides the branch-free secret-word and secret-bool
// primitive types that [github.com/ctcrypto/bigint/decimal] operates
// on, so its constant-time contract is independently testable.
//
// Both types are deliberately distinct from plain bool/uint so that
// the Go type checker, not convention, keeps a secret value out of an
// ordinary branch or comparison operator. Comparisons are built from
// the classic borrow-bit subtractor trick rather than Go's `<`/`==`
// operators, so no comparison here can compile down to a
// data-dependent branch.
package secret

import "github.com/ctcrypto/bigint/word"

// Bool is a branch-free boolean: all-ones for true, all-zero for
// false. Its operations never branch on the value they carry.
type Bool uint64

// True and False are the only two valid [Bool] values.
const (
	True  Bool = ^Bool(0)
	False Bool = 0
)

// And is a branch-free logical AND.
func (b Bool) And(other Bool) Bool {
	return b & other
}

// Or is a branch-free logical OR.
func (b Bool) Or(other Bool) Bool {
	return b | other
}

// Not is a branch-free logical NOT.
func (b Bool) Not() Bool {
	return ^b
}

// IsTrue collapses the receiver to a plain bool, for a caller that
// must finally branch on a public verdict (a test assertion, or the
// top-level decimal-parse wrapper deciding whether to surface an
// error). Never call it on a value still meant to be secret.
func (b Bool) IsTrue() bool {
	return b == True
}

// Word is an accumulator word tagged as sensitive. Its comparisons
// never use Go's `<`/`==` operators on the operands directly; both
// sides are always evaluated and combined with bitwise masks.
type Word[T word.Word] struct {
	v T
}

// NewWord lifts a plain word into the secret domain.
func NewWord[T word.Word](v T) Word[T] {
	return Word[T]{v: v}
}

// Reveal extracts the plain value. Named distinctly from a plain field
// access to mark every call site as a deliberate, explicit declassification.
func (w Word[T]) Reveal() T {
	return w.v
}

// Add returns w+other, wrapping modulo 2^bits(T) like the underlying
// unsigned type.
func (w Word[T]) Add(other Word[T]) Word[T] {
	return Word[T]{v: w.v + other.v}
}

// Sub returns w-other, wrapping modulo 2^bits(T) like the underlying
// unsigned type.
func (w Word[T]) Sub(other Word[T]) Word[T] {
	return Word[T]{v: w.v - other.v}
}

// lessThanMask returns [True] iff a < b, computed from the borrow bit
// of a-b without ever branching on the operands.
func lessThanMask[T word.Word](a, b T) Bool {
	notA := ^a
	diff := a - b
	borrow := (((notA & b) | ((notA | b) & diff)) >> uint(word.Bits[T]()-1)) & 1
	return False - Bool(uint64(borrow))
}

// Geq is a branch-free "w >= other".
func (w Word[T]) Geq(other Word[T]) Bool {
	return lessThanMask(w.v, other.v).Not()
}

// Leq is a branch-free "w <= other".
func (w Word[T]) Leq(other Word[T]) Bool {
	return lessThanMask(other.v, w.v).Not()
}

// Eq is a branch-free "w == other".
func (w Word[T]) Eq(other Word[T]) Bool {
	return lessThanMask(w.v, other.v).Not().And(lessThanMask(other.v, w.v).Not())
}
