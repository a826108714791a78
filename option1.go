package mipidbi

import (
	"encoding/binary"
	"fmt"

	"github.com/tinydisplays/mipidbi/nineword"
)

// option1Command sends cmd and its parameters as 9-bit words, D/C in the
// top bit: clear for the command byte, set for parameter bytes.
func (d *Dev) option1Command(v variant, cmd byte, par []byte) error {
	transfer := d.option1Emulated
	if v == option1Native {
		transfer = d.option1Native
	}
	if err := transfer(false, []byte{cmd}); err != nil {
		return err
	}
	if len(par) == 0 {
		return nil
	}
	return transfer(true, par)
}

// option1Native sends buf as native 9-bit words, one uint16 container per
// word in host byte order, as many words per transfer as fit the
// transport ceiling.
func (d *Dev) option1Native(dc bool, buf []byte) error {
	maxChunk := d.t.MaxTxSize(maxWriteChunk)
	if maxChunk < 2 {
		return fmt.Errorf("%w: transport transfer ceiling %d cannot hold one word", ErrInvalidArgument, maxChunk)
	}
	maxSrc := min(maxChunk/2, len(buf))

	scratch := make([]byte, 2*maxSrc)
	for len(buf) > 0 {
		chunk := min(len(buf), maxSrc)
		for i := 0; i < chunk; i++ {
			w := uint16(buf[i])
			if dc {
				w |= 0x100
			}
			binary.NativeEndian.PutUint16(scratch[2*i:], w)
		}
		buf = buf[chunk:]

		if err := d.t.Tx([]Transfer{{W: scratch[:2*chunk], BitsPerWord: 9}}); err != nil {
			return err
		}
	}
	return nil
}

// option1Emulated sends buf as 9-bit words over an 8-bit-only bus by
// repacking groups of eight words into nine raw bytes (see package
// nineword). A command is always a single byte, left-padded to a full
// group; data is chunked on group boundaries with at most one trailing
// partial group.
func (d *Dev) option1Emulated(dc bool, buf []byte) error {
	maxChunk := d.t.MaxTxSize(maxWriteChunk)
	if maxChunk < nineword.PackedGroupSize {
		return fmt.Errorf("%w: transport transfer ceiling %d cannot hold one packed group", ErrInvalidArgument, maxChunk)
	}

	if !dc {
		if len(buf) != 1 {
			return fmt.Errorf("%w: command transfers are a single byte, got %d", ErrInvalidArgument, len(buf))
		}
		var blk [nineword.PackedGroupSize]byte
		nineword.PackCommand(&blk, buf[0])
		return d.t.Tx([]Transfer{{W: blk[:]}})
	}

	// Largest group-aligned source chunk whose packed form fits the
	// transport ceiling, floored at one group so short writes still go.
	maxSrc := maxChunk / nineword.PackedGroupSize * nineword.GroupSize
	maxSrc = min(maxSrc, len(buf))
	maxSrc = max(nineword.GroupSize, maxSrc&^(nineword.GroupSize-1))

	scratch := make([]byte, nineword.PackedLen(maxSrc))
	for len(buf) > 0 {
		chunk := min(len(buf), maxSrc)
		n := nineword.Pack(scratch, buf[:chunk], dc)
		buf = buf[chunk:]

		if err := d.t.Tx([]Transfer{{W: scratch[:n]}}); err != nil {
			return err
		}
	}
	return nil
}
