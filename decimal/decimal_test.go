package decimal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ctcrypto/bigint/bigint"
	"github.com/ctcrypto/bigint/words"
)

func testString(opname string, bits int) string {
	return fmt.Sprintf("%s/bits=%d", opname, bits)
}

var bitWidths = []int{64, 128, 255, 256, 381, 384, 448, 512}

func TestParseFormatRoundTripSmallValues(t *testing.T) {
	for _, bits := range bitWidths {
		t.Run(testString("RoundTrip", bits), func(t *testing.T) {
			z, err := bigint.NewInt[uint64](bits, 64)
			require.NoError(t, err)

			ok := Parse(z, "123456789")
			require.True(t, ok.IsTrue())

			got, err := Format(z)
			require.NoError(t, err)

			l, err := words.DecimalLength(bits)
			require.NoError(t, err)
			require.Len(t, got, l)

			// Leading zeros, then the digits themselves.
			require.Equal(t, "123456789", got[l-len("123456789"):])
			for _, c := range got[:l-len("123456789")] {
				require.Equal(t, byte('0'), byte(c))
			}
		})
	}
}

func TestParseZero(t *testing.T) {
	z, err := bigint.NewInt[uint64](64, 64)
	require.NoError(t, err)
	ok := Parse(z, "0")
	require.True(t, ok.IsTrue())
	for _, l := range z.Limbs {
		require.Zero(t, l)
	}
}

func TestParseTreatsLeadingZerosAsInsignificant(t *testing.T) {
	z1, err := bigint.NewInt[uint64](64, 64)
	require.NoError(t, err)
	require.True(t, Parse(z1, "0042").IsTrue())

	z2, err := bigint.NewInt[uint64](64, 64)
	require.NoError(t, err)
	require.True(t, Parse(z2, "42").IsTrue())

	require.Equal(t, z1.Limbs, z2.Limbs)
}

func TestParseRejectsNonDigitCharacter(t *testing.T) {
	z, err := bigint.NewInt[uint64](64, 64)
	require.NoError(t, err)
	ok := Parse(z, "12a45")
	require.False(t, ok.IsTrue())
}

func TestParseRejectsWhenTooManyDigitsForWidth(t *testing.T) {
	z, err := bigint.NewInt[uint64](8, 8)
	require.NoError(t, err)
	ok := Parse(z, "123456789012345678901234567890")
	require.False(t, ok.IsTrue())
}

func TestParse128bitAnchor(t *testing.T) {
	// spec's worked example: 2^128 = "340282366920938463463374607431768211456",
	// 39 digits, must be rejected by the length pre-check into a
	// 128-bit destination, and accepted into a 129-bit one.
	s := "340282366920938463463374607431768211456"
	require.Len(t, s, 39)

	z128, err := bigint.NewInt[uint64](128, 64)
	require.NoError(t, err)
	require.False(t, Parse(z128, s).IsTrue())

	z129, err := bigint.NewInt[uint64](129, 64)
	require.NoError(t, err)
	require.True(t, Parse(z129, s).IsTrue())
}

func TestParse256bitMaxIsConservativelyRejected(t *testing.T) {
	// 2^256-1 renders as a 78-digit string, a value that fits in 256
	// bits, but the length pre-check rejects it at exactly 256 bits and
	// only accepts it from 259 bits.
	s := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	require.Len(t, s, 78)

	z256, err := bigint.NewInt[uint64](256, 64)
	require.NoError(t, err)
	require.False(t, Parse(z256, s).IsTrue())

	z259, err := bigint.NewInt[uint64](259, 64)
	require.NoError(t, err)
	require.True(t, Parse(z259, s).IsTrue())
}

func TestParseLoopRunsFullLengthRegardlessOfValidity(t *testing.T) {
	// Invalid characters are absorbed into ok but the accumulator is
	// still updated for every position; Parse must not short-circuit.
	z, err := bigint.NewInt[uint64](64, 64)
	require.NoError(t, err)
	ok := Parse(z, "9Z9Z9Z9Z9Z")
	require.False(t, ok.IsTrue())
	// The non-digit bytes still got folded into dst via AddSecretWord,
	// so some limb is non-zero.
	nonZero := false
	for _, l := range z.Limbs {
		if l != 0 {
			nonZero = true
		}
	}
	require.True(t, nonZero)
}
