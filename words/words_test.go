package words

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func testString(opname string, bits int) string {
	return fmt.Sprintf("%s/bits=%d", opname, bits)
}

func TestWordsRequired(t *testing.T) {
	cases := []struct{ bits, w, want int }{
		{256, 64, 4},
		{255, 64, 4},
		{381, 64, 6},
		{384, 64, 6},
		{128, 32, 4},
		{0, 64, 0},
	}
	for _, c := range cases {
		t.Run(testString("WordsRequired", c.bits), func(t *testing.T) {
			require.Equal(t, c.want, WordsRequired(c.bits, c.w))
		})
	}
}

func TestDecimalLength(t *testing.T) {
	bitWidths := []int{64, 128, 255, 256, 381, 384, 448, 512}
	for _, bits := range bitWidths {
		t.Run(testString("DecimalLength", bits), func(t *testing.T) {
			l, err := DecimalLength(bits)
			require.NoError(t, err)
			require.Greater(t, l, 0)
		})
	}

	t.Run("128bitsExactAnchor", func(t *testing.T) {
		// 2^128 - 1 has 39 decimal digits; decimal_length must not
		// under-count it.
		l, err := DecimalLength(128)
		require.NoError(t, err)
		require.GreaterOrEqual(t, l, 39)
	})

	t.Run("256bitsExactAnchor", func(t *testing.T) {
		// 2^256 - 1 has 78 decimal digits.
		l, err := DecimalLength(256)
		require.NoError(t, err)
		require.GreaterOrEqual(t, l, 78)
	})

	t.Run("NegativeBits", func(t *testing.T) {
		_, err := DecimalLength(-1)
		require.Error(t, err)
	})
}

func TestHasEnoughBitsForDecimal(t *testing.T) {
	t.Run("128bitAnchor", func(t *testing.T) {
		// spec's worked example: a 39-digit decimal string (2^128)
		// requires 129 bits; 128 is not enough.
		require.False(t, HasEnoughBitsForDecimal(128, 39))
		require.True(t, HasEnoughBitsForDecimal(129, 39))
	})

	t.Run("NegativeInputsRejected", func(t *testing.T) {
		require.False(t, HasEnoughBitsForDecimal(-1, 10))
		require.False(t, HasEnoughBitsForDecimal(10, -1))
	})

	t.Run("DecimalLengthMinusOneAccepted", func(t *testing.T) {
		for _, bits := range []int{64, 128, 255, 256, 381, 384, 448, 512} {
			l, err := DecimalLength(bits)
			require.NoError(t, err)
			require.True(t, HasEnoughBitsForDecimal(bits, l-1))
		}
	})

	t.Run("256bitMaxIsConservative", func(t *testing.T) {
		// 2^256-1 prints as a 78-digit string and fits in 256 bits, but
		// this pre-check rejects it at exactly 256 bits, demanding 259.
		require.False(t, HasEnoughBitsForDecimal(256, 78))
		require.True(t, HasEnoughBitsForDecimal(259, 78))
	})
}
