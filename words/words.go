// Package words implements the bit-width arithmetic used to size limb
// arrays and decimal text buffers. Every function here operates on
// public lengths only: bit counts, word widths, string lengths. None
// of it ever touches a secret value, so none of it needs to run in
// constant time.
package words

import (
	"fmt"
	"math"

	"github.com/ctcrypto/bigint/word"
)

// decimalNumerator and decimalDenominator are a continued-fraction
// convergent of log10(2): 12655/42039. It slightly overestimates the
// true value, so decimal_length(bits) is never short by more than one
// character.
const (
	decimalNumerator   = 12655
	decimalDenominator = 42039
)

// WordsRequired returns the number of limbs of width wordBitWidth
// needed to hold bits value bits: ⌈bits / wordBitWidth⌉.
func WordsRequired(bits, wordBitWidth int) int {
	return word.CeilDiv(bits, wordBitWidth)
}

// DecimalLength returns the number of decimal digits that suffice to
// render any bits-bit unsigned integer, including leading zeros:
// 1 + ⌊bits·12655/42039⌋.
//
// Returns an error if bits is large enough that the intermediate
// product bits*12655 would overflow a uint.
func DecimalLength(bits int) (int, error) {
	if bits < 0 {
		return 0, fmt.Errorf("words.DecimalLength: bits must be non-negative, got %d", bits)
	}
	if uint64(bits) >= math.MaxUint64/decimalNumerator {
		return 0, fmt.Errorf("words.DecimalLength: bits=%d overflows the log10(2) approximation (limit %d)", bits, math.MaxUint64/decimalNumerator)
	}
	return 1 + int((uint64(bits)*decimalNumerator)/decimalDenominator), nil
}

// HasEnoughBitsForDecimal reports whether a bits-bit unsigned integer
// passes the length bound for decimalLen decimal digits:
// bits ≥ ⌈decimalLen·42039/12655⌉ − 1.
//
// The −1 tolerates leading-digit ambiguity: e.g. a 381-bit number may
// render as "4…" or "5…" at 115 digits, both legitimate. Because of it
// the bound is one bit short of what the largest decimalLen-digit
// values need, so passing it does not guarantee that every such value
// fits in bits bits.
//
// The division rounds up rather than down, so a 39-digit decimal
// string requires 129 bits to safely parse into a destination;
// rounding down would accept it at 128 bits, the wrong direction for a
// check whose entire purpose is to reject too-narrow destinations
// before any parsing happens.
//
// Returns false (rather than an error) when decimalLen is large enough
// that the intermediate product would overflow a uint.
func HasEnoughBitsForDecimal(bits, decimalLen int) bool {
	if bits < 0 || decimalLen < 0 {
		return false
	}
	if uint64(decimalLen) >= math.MaxUint64/decimalDenominator {
		return false
	}
	num := uint64(decimalLen) * decimalDenominator
	required := int64((num+decimalNumerator-1)/decimalNumerator) - 1
	return int64(bits) >= required
}
