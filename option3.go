package mipidbi

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// maxReadSpeed is the clock ceiling for the read path.
const maxReadSpeed = 2 * physic.MegaHertz

// option3Command drives the select line to command level, sends the
// command byte at 8-bit width, then drives the line to data level and
// sends the parameters. Pixel payloads for WriteMemoryStart go out as
// 16-bit words when the bus can frame them and no byte swap is pending.
func (d *Dev) option3Command(cmd byte, par []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.t.Tx([]Transfer{{W: []byte{cmd}}}); err != nil {
		return err
	}
	if len(par) == 0 {
		return nil
	}

	bits := 8
	if cmd == WriteMemoryStart && !d.swapBytes && d.t.SupportsBits(16) {
		bits = 16
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}

	maxChunk := d.t.MaxTxSize(maxWriteChunk)
	if bits == 16 {
		maxChunk &^= 1
	}
	if maxChunk < 1 {
		return fmt.Errorf("%w: transport transfer ceiling is zero", ErrInvalidArgument)
	}
	for len(par) > 0 {
		chunk := min(len(par), maxChunk)
		if err := d.t.Tx([]Transfer{{W: par[:chunk], BitsPerWord: bits}}); err != nil {
			return err
		}
		par = par[chunk:]
	}
	return nil
}

// option3Read reads len(dst) bytes following cmd, in one transaction of
// two legs clocked at most at min(maxReadSpeed, MaxSpeed/2).
//
// GetDisplayID and GetDisplayStatus use a non-standard protocol dating
// back to Nokia panels: the controller inserts one dummy clock before the
// data, so an extra raw byte is read and every output byte spans nine raw
// bits across two raw bytes, shifted left by one. Those two commands only
// exist in 24-bit and 32-bit forms.
func (d *Dev) option3Read(cmd byte, dst []byte) error {
	if len(dst) == 0 {
		return fmt.Errorf("%w: zero-length read", ErrInvalidArgument)
	}
	if d.writeOnly {
		return fmt.Errorf("%w: device is write-only", ErrUnsupported)
	}

	speed := maxReadSpeed
	if half := d.t.MaxSpeed() / 2; half > 0 && half < speed {
		speed = half
	}

	rawLen := len(dst)
	dummyClock := cmd == GetDisplayID || cmd == GetDisplayStatus
	if dummyClock {
		if len(dst) != 3 && len(dst) != 4 {
			return fmt.Errorf("%w: command %#02x reads 3 or 4 bytes, got %d", ErrInvalidArgument, cmd, len(dst))
		}
		rawLen++
	}

	raw := make([]byte, rawLen)
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	err := d.t.Tx([]Transfer{
		{W: []byte{cmd}, Speed: speed},
		{R: raw, Speed: speed},
	})
	if err != nil {
		return err
	}

	if dummyClock {
		for i := range dst {
			dst[i] = raw[i]<<1 | raw[i+1]>>7
		}
	} else {
		copy(dst, raw)
	}

	d.traceCommand(cmd, dst)
	return nil
}
