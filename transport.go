package mipidbi

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Transfer describes one leg of a bus transaction.
type Transfer struct {
	// W is clocked out to the device. R, if non-nil, receives the bytes
	// clocked in during the same leg. At least one must be set.
	W []byte
	R []byte

	// BitsPerWord is the word framing for this leg. Zero means 8. Words
	// wider than eight bits occupy two bytes each in host byte order,
	// matching how a []uint16 buffer lies in memory.
	BitsPerWord int

	// Speed caps the bus clock for this leg. Zero means the transport's
	// configured speed. Used on the read path, which is not reliable at
	// full write speed on many panels.
	Speed physic.Frequency
}

// Transport is the seam between this layer and one physical bus. Every
// method is synchronous; Tx returns only once all legs have completed or
// one has failed.
type Transport interface {
	// Tx runs the transfers back to back as a single bus transaction,
	// with chip select asserted for the whole duration.
	Tx(tr []Transfer) error

	// MaxTxSize returns the byte ceiling for a single transfer. The
	// result never exceeds limit.
	MaxTxSize(limit int) int

	// SupportsBits reports whether the bus can frame words of the given
	// width natively.
	SupportsBits(bits int) bool

	// MaxSpeed returns the configured bus clock.
	MaxSpeed() physic.Frequency
}

// SPIOpts configures NewSPITransport.
type SPIOpts struct {
	// MaxSpeed is the bus clock the connection was established with. It
	// is only used to derive the read-path clock cap.
	MaxSpeed physic.Frequency

	// BitsPerWord lists the word widths the SPI controller can frame
	// natively, besides 8 which is always assumed. periph.io offers no
	// capability probe, so widths like 9 or 16 must be declared by the
	// caller who knows the hardware. Leave nil for 8-bit-only, which
	// selects the emulated Option 1 path.
	BitsPerWord []int
}

type spiTransport struct {
	c     spi.Conn
	speed physic.Frequency
	bits  map[int]bool
}

// NewSPITransport adapts a periph.io SPI connection to the Transport
// interface.
//
// Per-leg speed caps are best effort: the sysfs backend clocks every
// transfer at the port speed, so panels that need slow reads should be
// connected at a conservative speed or given a custom Transport.
func NewSPITransport(c spi.Conn, opts *SPIOpts) Transport {
	if opts == nil {
		opts = &SPIOpts{}
	}
	bits := map[int]bool{8: true}
	for _, b := range opts.BitsPerWord {
		bits[b] = true
	}
	return &spiTransport{c: c, speed: opts.MaxSpeed, bits: bits}
}

func (s *spiTransport) Tx(tr []Transfer) error {
	p := make([]spi.Packet, len(tr))
	for i, t := range tr {
		bits := t.BitsPerWord
		if bits == 0 {
			bits = 8
		}
		p[i] = spi.Packet{
			W:           t.W,
			R:           t.R,
			BitsPerWord: uint8(bits),
			KeepCS:      i != len(tr)-1,
		}
	}
	return s.c.TxPackets(p)
}

func (s *spiTransport) MaxTxSize(limit int) int {
	if l, ok := s.c.(conn.Limits); ok {
		if m := l.MaxTxSize(); m > 0 && m < limit {
			return m
		}
	}
	return limit
}

func (s *spiTransport) SupportsBits(bits int) bool {
	return s.bits[bits]
}

func (s *spiTransport) MaxSpeed() physic.Frequency {
	return s.speed
}
