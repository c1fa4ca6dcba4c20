// Package word defines the limb word type shared by the octet repacker,
// the canonical integer façade and the secret-value stand-ins.
package word

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Word is a machine word usable as a big-integer limb. Only 32- and
// 64-bit unsigned integers are supported; any other width is rejected
// by [Bits] and by every constructor that calls it.
type Word interface {
	constraints.Unsigned
	~uint32 | ~uint64
}

// Bits returns the bit width of T, one of 32 or 64.
//
// A Word instantiated at any other width cannot occur through the
// type system alone (the union in [Word] already excludes it), but
// this also serves as the single point that a future relaxation of
// the constraint must keep in sync with.
func Bits[T Word]() int {
	var z T
	switch any(z).(type) {
	case uint32:
		return 32
	case uint64:
		return 64
	default:
		panic(fmt.Errorf("word: unsupported word type %T: only uint32 and uint64 are supported", z))
	}
}

// CeilDiv returns ⌈a/b⌉ for positive b. Panics if b <= 0.
func CeilDiv(a, b int) int {
	if b <= 0 {
		panic(fmt.Errorf("word.CeilDiv: divisor must be positive, got %d", b))
	}
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
