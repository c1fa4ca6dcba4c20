// Package hex implements the canonical integer's hex codec:
// [Parse] and [Format]/[AppendFormat].
package hex

import (
	"fmt"
	"strings"

	"github.com/ctcrypto/bigint/bigint"
	"github.com/ctcrypto/bigint/word"
	"github.com/ctcrypto/bigint/words"
)

const digits = "0123456789abcdef"

// Parse decodes a hex string into dst. An optional "0x"/"0X" prefix is
// stripped first. The remaining characters must be [0-9a-fA-F]; an odd
// count is treated as if left-padded with an implicit '0' nibble.
// The decoded bytes are right-padded (big-endian, leading zeros) to
// ⌈dst.Bits/8⌉ before being unmarshalled.
func Parse[T word.Word](dst *bigint.Int[T], s string) error {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	for _, c := range s {
		if !isHexDigit(c) {
			return fmt.Errorf("hex.Parse: invalid character %q", c)
		}
	}

	need := words.WordsRequired(dst.Bits, 8)

	// An odd-length string is treated as if a '0' nibble were
	// implicitly prepended, so it always splits into whole bytes.
	digitsStr := s
	if len(digitsStr)%2 == 1 {
		digitsStr = "0" + digitsStr
	}
	raw := make([]byte, len(digitsStr)/2)
	for i := 0; i < len(raw); i++ {
		hi, _ := hexVal(rune(digitsStr[2*i]))
		lo, _ := hexVal(rune(digitsStr[2*i+1]))
		raw[i] = hi<<4 | lo
	}

	if need < len(raw) {
		return fmt.Errorf("hex.Parse: %d hex bytes exceed the %d bytes available for %d bits", len(raw), need, dst.Bits)
	}

	padded := make([]byte, need)
	copy(padded[need-len(raw):], raw)

	return bigint.Unmarshal(dst, padded, bigint.BigEndian)
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c rune) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return byte(c-'a') + 10, nil
	case c >= 'A' && c <= 'F':
		return byte(c-'A') + 10, nil
	default:
		return 0, fmt.Errorf("hex: invalid digit %q", c)
	}
}

// Format marshals src into a ⌈src.Bits/8⌉-byte buffer in the requested
// endianness, then renders it as "0x" followed by two lower-case hex
// characters per byte. Leading zeros are retained so the output width
// (and therefore the time spent rendering it) never depends on the
// value.
func Format[T word.Word](src *bigint.Int[T], e bigint.Endianness) (string, error) {
	var sb strings.Builder
	need := words.WordsRequired(src.Bits, 8)
	sb.Grow(2 + 2*need)
	if err := AppendFormat(&sb, src, e); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// AppendFormat is the allocation-conscious counterpart of [Format],
// writing directly to sb.
func AppendFormat[T word.Word](sb *strings.Builder, src *bigint.Int[T], e bigint.Endianness) error {
	need := words.WordsRequired(src.Bits, 8)
	buf := make([]byte, need)
	if err := bigint.Marshal(buf, src, e); err != nil {
		return fmt.Errorf("hex.AppendFormat: %w", err)
	}

	sb.WriteString("0x")
	for _, b := range buf {
		sb.WriteByte(digits[b>>4])
		sb.WriteByte(digits[b&0xf])
	}
	return nil
}
