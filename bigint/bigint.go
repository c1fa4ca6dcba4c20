// Package bigint provides the canonical integer façade
// (unmarshal/marshal/from_uint) plus the Int[T] data model that backs
// it. Int[T] is a slice-backed limb sequence with its bit count and
// word width carried as runtime fields, in place of the const generics
// Go does not have, directly grounded on ring.RNSPoly/ring.Point's
// BufferSize/FromBuffer pattern.
package bigint

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/ctcrypto/bigint/octet"
	"github.com/ctcrypto/bigint/secret"
	"github.com/ctcrypto/bigint/word"
	"github.com/ctcrypto/bigint/words"
)

// Endianness selects the byte order used by [Unmarshal] and [Marshal].
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

// DebugAssertions gates debug-only invariant checks (e.g. destination
// capacity) that the hot arithmetic path skips by default. Off by
// default; nothing in this module turns it on.
var DebugAssertions = false

// Int is a fixed-bit-width unsigned integer: Bits total value bits,
// stored as a little-endian sequence of Limbs each carrying the low
// WordBitWidth bits of T. Limbs[0] is least significant.
type Int[T word.Word] struct {
	Bits         int
	WordBitWidth int
	Limbs        []T
}

// NewInt allocates a zero-valued [Int] with bits total bits, each limb
// carrying the low wordBitWidth bits of T. Returns an error if bits is
// not positive, or if wordBitWidth falls outside [1, 8·sizeof(T)].
func NewInt[T word.Word](bits, wordBitWidth int) (*Int[T], error) {
	bitsT := word.Bits[T]()
	if bits <= 0 {
		return nil, fmt.Errorf("bigint.NewInt: bits must be positive, got %d", bits)
	}
	if wordBitWidth < 1 || wordBitWidth > bitsT {
		return nil, fmt.Errorf("bigint.NewInt: word bit width %d out of range [1,%d]", wordBitWidth, bitsT)
	}
	n := words.WordsRequired(bits, wordBitWidth)
	return &Int[T]{
		Bits:         bits,
		WordBitWidth: wordBitWidth,
		Limbs:        make([]T, n),
	}, nil
}

// BufferSize returns the number of limbs [NewInt] allocates for the
// given bits/wordBitWidth pair, the way ring.Point.BufferSize does for
// its own FromBuffer counterpart.
func BufferSize(bits, wordBitWidth int) int {
	return words.WordsRequired(bits, wordBitWidth)
}

// mask returns the bits valid in a single limb of the receiver.
func (z *Int[T]) mask() T {
	bitsT := word.Bits[T]()
	return ^T(0) >> uint(bitsT-z.WordBitWidth)
}

// SetZero overwrites every limb with zero.
func (z *Int[T]) SetZero() {
	for i := range z.Limbs {
		z.Limbs[i] = 0
	}
}

// AddSecretWord adds a secret word into the receiver in place,
// carrying through the limb chain. len(z.Limbs) is public, so the loop
// always runs the full limb count; the carry out of each limb feeds
// the next arithmetically, with no branch on the carry value.
//
// limb+carry can overflow a plain T add once WordBitWidth reaches the
// full width of T, so the sum is formed with [bits.Add64] and the
// carry-out is reassembled from its 64-bit sum and 1-bit overflow with
// the same merge formula [Int.MulSmall] uses.
func (z *Int[T]) AddSecretWord(w secret.Word[T]) {
	mask := z.mask()
	wdt := uint(z.WordBitWidth)
	carry := uint64(w.Reveal())
	for i := range z.Limbs {
		sumLo, c := bits.Add64(uint64(z.Limbs[i]), carry, 0)
		z.Limbs[i] = T(sumLo) & mask
		carry = (sumLo >> wdt) | (c << (64 - wdt))
	}
}

// MulSmall multiplies the receiver in place by a small public
// constant m. m is assumed to fit in a single limb; this is a public,
// variable-time operation.
//
// The per-limb product z.Limbs[i]*m can itself need more than 64 bits
// once WordBitWidth approaches the full width of T, so the product and
// carry-in are combined via [bits.Mul64]/[bits.Add64], the same
// 128-bit-safe discipline the octet repacker uses for its
// shift-register accumulator.
func (z *Int[T]) MulSmall(m T) {
	mask := z.mask()
	var carry uint64
	w := uint(z.WordBitWidth)
	for i := range z.Limbs {
		hi, lo := bits.Mul64(uint64(z.Limbs[i]), uint64(m))
		var c uint64
		lo, c = bits.Add64(lo, carry, 0)
		hi += c
		z.Limbs[i] = T(lo) & mask
		carry = (lo >> w) | (hi << (64 - w))
	}
}

// Div10 divides the receiver in place by 10 and returns the remainder
// (0..9), the decimal codec's per-digit primitive.
//
// The classic single-divisor long-division step computes
// rem*2^W + limb before dividing; for W=64 that dividend no longer
// fits in a uint64 (rem is only ever 0..9, but rem<<64 silently
// truncates to 0 in plain Go arithmetic). [bits.Div64] takes the
// dividend as a 128-bit (hi, lo) pair instead, so it stays exact at
// every WordBitWidth up to and including 64.
func (z *Int[T]) Div10() int {
	mask := z.mask()
	w := uint(z.WordBitWidth)
	var rem uint64
	for i := len(z.Limbs) - 1; i >= 0; i-- {
		hi := rem >> (64 - w)
		lo := (rem << w) | uint64(z.Limbs[i])
		q, r := bits.Div64(hi, lo, 10)
		z.Limbs[i] = T(q) & mask
		rem = r
	}
	return int(rem)
}

// Unmarshal decodes src into dst, dispatching to the LE/BE octet
// repacker at dst.WordBitWidth. When dst.Bits == 0 the destination is
// zeroed and the call is a no-op.
func Unmarshal[T word.Word](dst *Int[T], src []byte, e Endianness) error {
	if dst.Bits == 0 {
		dst.SetZero()
		return nil
	}
	switch e {
	case BigEndian:
		_, err := octet.UnmarshalBE(dst.Limbs, src, dst.WordBitWidth)
		return err
	default:
		_, err := octet.UnmarshalLE(dst.Limbs, src, dst.WordBitWidth)
		return err
	}
}

// Marshal encodes src into dst in the requested endianness. In debug
// builds ([DebugAssertions] true) it panics if dst is shorter than
// ⌈Bits/8⌉; otherwise Marshal makes no ⌈Bits/8⌉ check of its own.
// Either way the octet repacker returns an error when dst cannot hold
// every limb of src (⌈WordBitWidth·len(Limbs)/8⌉ bytes little-endian,
// len(Limbs)·sizeof(T) bytes big-endian), which can exceed ⌈Bits/8⌉.
func Marshal[T word.Word](dst []byte, src *Int[T], e Endianness) error {
	if DebugAssertions {
		need := words.WordsRequired(src.Bits, 8)
		if len(dst) < need {
			panic(fmt.Errorf("bigint.Marshal: destination holds %d bytes, need at least %d for %d bits", len(dst), need, src.Bits))
		}
	}
	switch e {
	case BigEndian:
		_, err := octet.MarshalBE(dst, src.Limbs, src.WordBitWidth)
		return err
	default:
		_, err := octet.MarshalLE(dst, src.Limbs, src.WordBitWidth)
		return err
	}
}

// FromUint reinterprets the in-memory bytes of a host-native unsigned
// scalar in host byte order and unmarshals them into dst at host
// endianness. src is public; there is no constant-time requirement
// here.
func FromUint[T word.Word, U uint8 | uint16 | uint32 | uint64 | uint](dst *Int[T], src U) error {
	var buf [8]byte
	switch v := any(src).(type) {
	case uint8:
		buf[0] = v
		return Unmarshal(dst, buf[:1], hostEndianness())
	case uint16:
		binary.NativeEndian.PutUint16(buf[:2], v)
		return Unmarshal(dst, buf[:2], hostEndianness())
	case uint32:
		binary.NativeEndian.PutUint32(buf[:4], v)
		return Unmarshal(dst, buf[:4], hostEndianness())
	case uint64:
		binary.NativeEndian.PutUint64(buf[:8], v)
		return Unmarshal(dst, buf[:8], hostEndianness())
	case uint:
		binary.NativeEndian.PutUint64(buf[:8], uint64(v))
		return Unmarshal(dst, buf[:8], hostEndianness())
	default:
		return fmt.Errorf("bigint.FromUint: unsupported scalar type %T", v)
	}
}

func hostEndianness() Endianness {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	if buf[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}

// BinarySize returns the serialized size of the receiver: an 8-byte
// length prefix (as in structs.Vector) followed by the big-endian
// canonical octets.
func (z *Int[T]) BinarySize() int {
	return 8 + words.WordsRequired(z.Bits, 8)
}

// WriteTo writes the receiver's canonical big-endian form, prefixed by
// its bit count, implementing io.WriterTo the way ring.RNSPoly does.
// w is wrapped in a bufio.Writer unless it already is one.
func (z *Int[T]) WriteTo(w io.Writer) (n int64, err error) {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}

	var hdr [8]byte
	binary.BigEndian.PutUint64(hdr[:], uint64(z.Bits))
	wn, err := bw.Write(hdr[:])
	n += int64(wn)
	if err != nil {
		return n, fmt.Errorf("bigint.Int.WriteTo: %w", err)
	}

	need := words.WordsRequired(z.Bits, 8)
	payload := make([]byte, need)
	if err = Marshal(payload, z, BigEndian); err != nil {
		return n, fmt.Errorf("bigint.Int.WriteTo: %w", err)
	}
	wn, err = bw.Write(payload)
	n += int64(wn)
	if err != nil {
		return n, fmt.Errorf("bigint.Int.WriteTo: %w", err)
	}

	return n, bw.Flush()
}

// ReadFrom reads a value previously written by [Int.WriteTo]. The
// receiver's Bits and WordBitWidth must already be set (by [NewInt])
// to a value compatible with the stream; ReadFrom does not resize
// Limbs, mirroring ring.RNSPoly.ReadFrom's expectation that the
// receiver is already shaped.
func (z *Int[T]) ReadFrom(r io.Reader) (n int64, err error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var hdr [8]byte
	rn, err := io.ReadFull(br, hdr[:])
	n += int64(rn)
	if err != nil {
		return n, fmt.Errorf("bigint.Int.ReadFrom: %w", err)
	}
	bits := int(binary.BigEndian.Uint64(hdr[:]))
	if bits != z.Bits {
		return n, fmt.Errorf("bigint.Int.ReadFrom: stream carries %d bits, receiver is shaped for %d", bits, z.Bits)
	}

	need := words.WordsRequired(z.Bits, 8)
	payload := make([]byte, need)
	rn, err = io.ReadFull(br, payload)
	n += int64(rn)
	if err != nil {
		return n, fmt.Errorf("bigint.Int.ReadFrom: %w", err)
	}

	if err = Unmarshal(z, payload, BigEndian); err != nil {
		return n, fmt.Errorf("bigint.Int.ReadFrom: %w", err)
	}
	return n, nil
}

// MarshalBinary encodes the receiver the way [Int.WriteTo] does, onto
// a freshly allocated slice.
func (z *Int[T]) MarshalBinary() ([]byte, error) {
	var buf writeBuffer
	if _, err := z.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.b, nil
}

// UnmarshalBinary decodes a slice produced by [Int.MarshalBinary] or
// [Int.WriteTo].
func (z *Int[T]) UnmarshalBinary(p []byte) error {
	_, err := z.ReadFrom(&readBuffer{b: p})
	return err
}

// writeBuffer and readBuffer are minimal io.Writer/io.Reader adapters
// over an in-memory slice, used by MarshalBinary/UnmarshalBinary to
// reuse WriteTo/ReadFrom without a real io.Writer/io.Reader backing
// store.
type writeBuffer struct{ b []byte }

func (w *writeBuffer) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

type readBuffer struct{ b []byte }

func (r *readBuffer) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}
