package nineword

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// GroupSize is the number of source bytes carried by one full group.
	GroupSize = 8
	// PackedGroupSize is the number of wire bytes one full group occupies.
	PackedGroupSize = 9
)

// ErrBadLength is returned by Unpack for a stream that cannot be split
// into nine-byte groups plus at most one trailing eight-byte block.
var ErrBadLength = errors.New("nineword: packed stream has invalid length")

// Word is one decoded 9-bit bus word: the data/command flag and the
// payload byte.
type Word struct {
	DC   bool
	Data byte
}

// shiftIn places the word (dc, b) at slot i of the 64-bit scratch value.
// Valid for the seven slots whose payload fits entirely in 64 bits.
func shiftIn(v uint64, b byte, dc bool, i int) uint64 {
	if dc {
		v |= 1 << (63 - 9*i)
	}
	return v | uint64(b)<<(55-9*i)
}

// PackGroup packs exactly eight source bytes, all tagged with dc, into
// nine wire bytes.
func PackGroup(dst *[PackedGroupSize]byte, src *[GroupSize]byte, dc bool) {
	var v uint64
	for i := 0; i < GroupSize-1; i++ {
		v = shiftIn(v, src[i], dc, i)
	}
	// The eighth word straddles the scratch value: its flag is the
	// least-significant scratch bit, its payload is the ninth wire byte.
	if dc {
		v |= 1
	}
	binary.BigEndian.PutUint64(dst[:8], v)
	dst[8] = src[GroupSize-1]
}

// PackPartial packs a trailing group of one to seven source bytes, all
// tagged with dc, into eight wire bytes. Unused word slots stay zero,
// which the controller treats as no-op filler.
func PackPartial(dst *[GroupSize]byte, src []byte, dc bool) {
	if len(src) == 0 || len(src) >= GroupSize {
		panic(fmt.Sprintf("nineword: partial group must hold 1..%d bytes, got %d", GroupSize-1, len(src)))
	}
	var v uint64
	for i, b := range src {
		v = shiftIn(v, b, dc, i)
	}
	binary.BigEndian.PutUint64(dst[:], v)
}

// PackCommand packs a lone command byte (dc flag clear) into nine wire
// bytes: eight zero filler bytes, then the command byte in the last word
// slot. Note the filler leads here, while PackPartial trails; the two
// padded forms are intentionally not unified.
func PackCommand(dst *[PackedGroupSize]byte, cmd byte) {
	for i := range dst[:8] {
		dst[i] = 0
	}
	dst[8] = cmd
}

// PackedLen returns the number of wire bytes Pack produces for n source
// bytes: nine per full group of eight, eight for a partial tail.
func PackedLen(n int) int {
	l := n / GroupSize * PackedGroupSize
	if n%GroupSize != 0 {
		l += GroupSize
	}
	return l
}

// Pack encodes src, all bytes tagged with dc, into dst and returns the
// number of wire bytes written. dst must hold at least PackedLen(len(src))
// bytes.
func Pack(dst, src []byte, dc bool) int {
	n := 0
	for len(src) >= GroupSize {
		PackGroup((*[PackedGroupSize]byte)(dst[n:n+PackedGroupSize]), (*[GroupSize]byte)(src[:GroupSize]), dc)
		src = src[GroupSize:]
		n += PackedGroupSize
	}
	if len(src) > 0 {
		PackPartial((*[GroupSize]byte)(dst[n:n+GroupSize]), src, dc)
		n += GroupSize
	}
	return n
}

// unpack64 decodes the seven complete words of a 64-bit scratch value.
func unpack64(v uint64, words []Word) []Word {
	for i := 0; i < GroupSize-1; i++ {
		words = append(words, Word{
			DC:   v>>(63-9*i)&1 != 0,
			Data: byte(v >> (55 - 9*i)),
		})
	}
	return words
}

// Unpack is the reference decoder for the packed wire format. Nine-byte
// groups decode to eight words. One trailing eight-byte block decodes to
// seven words; its dangling eighth flag bit must be zero, since no payload
// for it was sent.
func Unpack(raw []byte) ([]Word, error) {
	words := make([]Word, 0, len(raw)/PackedGroupSize*GroupSize+GroupSize)
	for len(raw) >= PackedGroupSize {
		v := binary.BigEndian.Uint64(raw[:8])
		words = unpack64(v, words)
		words = append(words, Word{DC: v&1 != 0, Data: raw[8]})
		raw = raw[PackedGroupSize:]
	}
	switch len(raw) {
	case 0:
		return words, nil
	case GroupSize:
		v := binary.BigEndian.Uint64(raw)
		words = unpack64(v, words)
		if v&1 != 0 {
			return nil, errors.New("nineword: truncated word in trailing block")
		}
		return words, nil
	default:
		return nil, ErrBadLength
	}
}
