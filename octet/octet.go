// Package octet implements the shift-register repacker that converts
// between a byte stream and an array of limbs of a configurable word
// bit width: [UnmarshalLE], [UnmarshalBE], [MarshalLE] and [MarshalBE].
//
// Every routine's control flow depends only on the public lengths
// len(src), len(dst) and wordBitWidth, never on a byte or limb value.
// None of them allocate; all of them operate solely on the caller's
// arrays plus a handful of register-resident accumulator words.
package octet

import (
	"encoding/binary"
	"fmt"

	"github.com/ctcrypto/bigint/word"
	"github.com/ctcrypto/bigint/words"
)

func checkWidth[T word.Word](wordBitWidth int) (mask T, err error) {
	bitsT := word.Bits[T]()
	if wordBitWidth < 1 || wordBitWidth > bitsT {
		return 0, fmt.Errorf("octet: word bit width %d out of range [1,%d]", wordBitWidth, bitsT)
	}
	return ^T(0) >> uint(bitsT-wordBitWidth), nil
}

// UnmarshalLE packs src, read in ascending address order, into dst as
// a sequence of limbs of wordBitWidth valid low bits, little-endian.
// Any limbs beyond what src supplies are zeroed. Returns the number of
// limbs actually derived from src and an error if dst is too small to
// hold ⌈8·len(src)/wordBitWidth⌉ limbs.
func UnmarshalLE[T word.Word](dst []T, src []byte, wordBitWidth int) (int, error) {
	mask, err := checkWidth[T](wordBitWidth)
	if err != nil {
		return 0, err
	}

	need := words.WordsRequired(len(src)*8, wordBitWidth)
	if need > len(dst) {
		return 0, fmt.Errorf("octet.UnmarshalLE: destination holds %d limbs, need %d for %d source bytes at word bit width %d", len(dst), need, len(src), wordBitWidth)
	}

	var lo, hi uint64
	accLen := 0
	dstIdx := 0

	for _, b := range src {
		v := uint64(b)
		lo |= v << uint(accLen)
		hi |= v >> uint(64-accLen)
		accLen += 8

		for accLen >= wordBitWidth {
			dst[dstIdx] = T(lo) & mask
			dstIdx++
			lo, hi = (lo>>uint(wordBitWidth))|(hi<<uint(64-wordBitWidth)), hi>>uint(wordBitWidth)
			accLen -= wordBitWidth
		}
	}

	if dstIdx < len(dst) && accLen > 0 {
		dst[dstIdx] = T(lo) & mask
		dstIdx++
	}
	for i := dstIdx; i < len(dst); i++ {
		dst[i] = 0
	}
	return dstIdx, nil
}

// UnmarshalBE packs src, read in descending address order, into dst as
// a sequence of full-word limbs, big-endian. wordBitWidth must equal
// the full bit width of T; a mixed-width big-endian path is not
// defined by this package.
func UnmarshalBE[T word.Word](dst []T, src []byte, wordBitWidth int) (int, error) {
	bitsT := word.Bits[T]()
	if wordBitWidth != bitsT {
		return 0, fmt.Errorf("octet.UnmarshalBE: word bit width must equal %d (full word) for big-endian, got %d", bitsT, wordBitWidth)
	}

	limbBytes := bitsT / 8
	need := words.WordsRequired(len(src)*8, wordBitWidth)
	if need > len(dst) {
		return 0, fmt.Errorf("octet.UnmarshalBE: destination holds %d limbs, need %d for %d source bytes", len(dst), need, len(src))
	}

	pos := len(src)
	dstIdx := 0
	var buf [8]byte

	for pos > 0 {
		if pos >= limbBytes {
			dst[dstIdx] = decodeBE[T](src[pos-limbBytes : pos])
			pos -= limbBytes
		} else {
			for i := range buf[:limbBytes] {
				buf[i] = 0
			}
			copy(buf[limbBytes-pos:limbBytes], src[:pos])
			dst[dstIdx] = decodeBE[T](buf[:limbBytes])
			pos = 0
		}
		dstIdx++
	}

	for i := dstIdx; i < len(dst); i++ {
		dst[i] = 0
	}
	return dstIdx, nil
}

// MarshalLE unpacks src (each limb carrying wordBitWidth valid low
// bits) into dst as a little-endian byte string. Limbs beyond len(src)
// are treated as zero, so a dst longer than required is zero-padded at
// the high-index end. Returns len(dst) and an error if dst is too
// small to hold ⌈wordBitWidth·len(src)/8⌉ bytes.
func MarshalLE[T word.Word](dst []byte, src []T, wordBitWidth int) (int, error) {
	mask, err := checkWidth[T](wordBitWidth)
	if err != nil {
		return 0, err
	}

	need := words.WordsRequired(len(src)*wordBitWidth, 8)
	if need > len(dst) {
		return 0, fmt.Errorf("octet.MarshalLE: destination holds %d bytes, need %d for %d limbs at word bit width %d", len(dst), need, len(src), wordBitWidth)
	}

	var lo, hi uint64
	accLen := 0
	srcIdx := 0
	byteIdx := 0

	for byteIdx < len(dst) {
		for accLen < 8 {
			var v uint64
			if srcIdx < len(src) {
				v = uint64(src[srcIdx] & mask)
				srcIdx++
			}
			lo |= v << uint(accLen)
			hi |= v >> uint(64-accLen)
			accLen += wordBitWidth
		}
		dst[byteIdx] = byte(lo)
		byteIdx++
		lo, hi = (lo>>8)|(hi<<56), hi>>8
		accLen -= 8
	}

	return byteIdx, nil
}

// MarshalBE unpacks src into dst as a big-endian byte string, writing
// whole words at the trailing end of the buffer and zero-padding the
// leading end when dst is longer than required. wordBitWidth must
// equal the full bit width of T (see [UnmarshalBE]).
func MarshalBE[T word.Word](dst []byte, src []T, wordBitWidth int) (int, error) {
	bitsT := word.Bits[T]()
	if wordBitWidth != bitsT {
		return 0, fmt.Errorf("octet.MarshalBE: word bit width must equal %d (full word) for big-endian, got %d", bitsT, wordBitWidth)
	}

	limbBytes := bitsT / 8
	need := len(src) * limbBytes
	if need > len(dst) {
		return 0, fmt.Errorf("octet.MarshalBE: destination holds %d bytes, need %d for %d limbs", len(dst), need, len(src))
	}

	for i := 0; i < len(dst)-need; i++ {
		dst[i] = 0
	}

	tail := len(dst)
	for i := 0; i < len(src); i++ {
		tail -= limbBytes
		encodeBE[T](dst[tail:tail+limbBytes], src[i])
	}

	return len(dst), nil
}

func decodeBE[T word.Word](b []byte) T {
	switch word.Bits[T]() {
	case 32:
		return T(binary.BigEndian.Uint32(b))
	default:
		return T(binary.BigEndian.Uint64(b))
	}
}

func encodeBE[T word.Word](b []byte, v T) {
	switch word.Bits[T]() {
	case 32:
		binary.BigEndian.PutUint32(b, uint32(v))
	default:
		binary.BigEndian.PutUint64(b, uint64(v))
	}
}
