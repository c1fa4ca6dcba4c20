// Package decimal implements the canonical integer's decimal codec:
// [Parse] (constant-time over the digit bytes) and [Format].
package decimal

import (
	"strings"

	"github.com/ctcrypto/bigint/bigint"
	"github.com/ctcrypto/bigint/secret"
	"github.com/ctcrypto/bigint/word"
	"github.com/ctcrypto/bigint/words"
)

// Parse decodes a decimal string into dst. Returns secret.False
// without touching the constant-time digit loop when dst.Bits fails
// [words.HasEnoughBitsForDecimal] for len(s) digits (a public-length
// pre-check, one bit tolerant). Otherwise the loop always runs
// len(s) iterations: every byte is folded into both the accumulated
// value and the validity mask regardless of whether it is a digit, so
// control flow and memory access never depend on s's contents.
func Parse[T word.Word](dst *bigint.Int[T], s string) secret.Bool {
	if !words.HasEnoughBitsForDecimal(dst.Bits, len(s)) {
		return secret.False
	}

	dst.SetZero()
	ok := secret.True

	zero := secret.NewWord[T]('0')
	nine := secret.NewWord[T]('9')
	ten := T(10)

	for i := 0; i < len(s); i++ {
		c := secret.NewWord[T](T(s[i]))
		ok = ok.And(c.Geq(zero)).And(c.Leq(nine))

		dst.AddSecretWord(c.Sub(zero))

		if i != len(s)-1 {
			dst.MulSmall(ten)
		}
	}

	return ok
}

// Format renders src as a decimal_length(src.Bits)-digit string,
// leading zeros retained, by repeatedly calling the consumer
// contract's div10 primitive on a scratch copy of src.
func Format[T word.Word](src *bigint.Int[T]) (string, error) {
	l, err := words.DecimalLength(src.Bits)
	if err != nil {
		return "", err
	}

	// TODO: scratch carries a copy of src's limbs through Div10 down to
	// zero and is then dropped; nothing clears its backing array.
	scratch := &bigint.Int[T]{
		Bits:         src.Bits,
		WordBitWidth: src.WordBitWidth,
		Limbs:        append([]T(nil), src.Limbs...),
	}

	out := make([]byte, l)
	for i := l - 1; i >= 0; i-- {
		out[i] = '0' + byte(scratch.Div10())
	}

	var sb strings.Builder
	sb.Write(out)
	return sb.String(), nil
}
