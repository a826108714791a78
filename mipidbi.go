package mipidbi

import (
	"encoding/binary"
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Errors returned by this package. Transport failures are passed through
// unchanged and are not wrapped in either sentinel.
var (
	// ErrInvalidArgument reports a request the configuration can never
	// satisfy: an under-sized transport chunk, a bad length for a
	// dummy-clock read, a multi-byte command transfer.
	ErrInvalidArgument = errors.New("mipidbi: invalid argument")

	// ErrUnsupported reports an operation the device cannot perform:
	// reading from a write-only panel, or routing a command outside the
	// read set to the read path.
	ErrUnsupported = errors.New("mipidbi: unsupported operation")
)

// maxWriteChunk caps the size requested from the transport for a single
// write transfer. The transport may lower it further.
const maxWriteChunk = 4096

// Opts is the configuration for a DBI Type C controller.
type Opts struct {
	// Speed is the bus clock used by NewSPI to connect the port.
	// Defaults to 10MHz. Ignored by New.
	Speed physic.Frequency

	// BitsPerWord lists native word widths of the SPI controller beyond
	// the always-assumed 8. Used by NewSPI to build the transport;
	// ignored by New. Declaring 9 enables the native Option 1 path,
	// declaring 16 enables 16-bit pixel framing.
	BitsPerWord []int

	// WriteOnly marks panels with no readback wiring (MISO not
	// connected). Read commands fail with ErrUnsupported.
	WriteOnly bool

	// ReadCommands is the set of command bytes served by the read path.
	// nil selects the standard DCS read commands. An empty non-nil
	// slice registers none, so every command is treated as a write.
	ReadCommands []byte

	// Logf, when set, receives a one-line trace of every command
	// issued, with its parameter bytes.
	Logf func(format string, v ...any)
}

// variant identifies the electrical encoding used for one call.
type variant uint8

const (
	// option1Native: D/C as the ninth bit of a native 9-bit word.
	option1Native variant = iota + 1
	// option1Emulated: 9-bit words repacked into 8-bit transfers.
	option1Emulated
	// option3: D/C on a dedicated select line, plain 8/16-bit words.
	option3
)

// Dev drives the command/data transport of a MIPI DBI Type C display
// controller. The only state surviving across calls is set at
// construction; scratch buffers live per call.
//
// Dev serializes nothing: the caller must not issue overlapping commands
// on one instance.
type Dev struct {
	t         Transport
	dc        gpio.PinOut // nil selects Option 1
	writeOnly bool
	swapBytes bool
	readCmds  map[byte]struct{}
	logf      func(format string, v ...any)
}

// New creates a controller on top of an existing Transport.
//
// If dc is set, the controller is driven as DBI Type C Option 3 with dc as
// the data/command select line. If dc is nil, Option 1 is used: the D/C
// flag travels as a ninth bit per word, natively when the transport can
// frame 9-bit words and via the 8-to-9 byte repacking otherwise. The
// native capability is queried per call, not cached.
func New(t Transport, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}

	cmds := opts.ReadCommands
	if cmds == nil {
		cmds = dcsReadCommands
	}
	set := make(map[byte]struct{}, len(cmds))
	for _, c := range cmds {
		// Nop terminated the classic sentinel table and was never
		// matchable; keep it unregistrable.
		if c == Nop {
			continue
		}
		set[c] = struct{}{}
	}

	d := &Dev{
		t:         t,
		dc:        dc,
		writeOnly: opts.WriteOnly,
		readCmds:  set,
		logf:      opts.Logf,
	}

	// 16-bit pixel payloads can only go out as-is when the bus frames
	// 16-bit words or the host already stores them in wire order.
	if hostLittleEndian() && !t.SupportsBits(16) {
		d.swapBytes = true
	}
	return d, nil
}

// NewSPI connects the port and creates a controller on it, configured for
// Mode0 at Opts.Speed (default 10MHz).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	speed := opts.Speed
	if speed == 0 {
		speed = 10 * physic.MegaHertz
	}
	c, err := p.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	t := NewSPITransport(c, &SPIOpts{MaxSpeed: speed, BitsPerWord: opts.BitsPerWord})
	return New(t, dc, opts)
}

// variant picks the encoder for one call against the live transport
// capability.
func (d *Dev) variant() variant {
	switch {
	case d.dc != nil:
		return option3
	case d.t.SupportsBits(9):
		return option1Native
	default:
		return option1Emulated
	}
}

// isReadCommand reports whether cmd is in the configured read set.
func (d *Dev) isReadCommand(cmd byte) bool {
	_, ok := d.readCmds[cmd]
	return ok
}

// Command issues cmd followed by its parameter bytes.
func (d *Dev) Command(cmd byte, par ...byte) error {
	return d.CommandBuf(cmd, par)
}

// CommandBuf issues cmd with buf as its payload. For commands in the read
// set, buf is filled from the device instead (see ReadCommand); a write
// command is never partially sent: the first failing transfer aborts the
// rest and is returned as is.
func (d *Dev) CommandBuf(cmd byte, buf []byte) error {
	if d.isReadCommand(cmd) {
		return d.ReadCommand(cmd, buf)
	}
	d.traceCommand(cmd, buf)

	switch v := d.variant(); v {
	case option1Native, option1Emulated:
		return d.option1Command(v, cmd, buf)
	case option3:
		return d.option3Command(cmd, buf)
	default:
		panic("mipidbi: unknown variant")
	}
}

// ReadCommand reads len(dst) bytes following cmd. Only commands in the
// configured read set are accepted, and only Option 3 wiring has a read
// path.
func (d *Dev) ReadCommand(cmd byte, dst []byte) error {
	if !d.isReadCommand(cmd) {
		return fmt.Errorf("%w: %#02x is not a registered read command", ErrUnsupported, cmd)
	}
	if d.dc == nil {
		// Option 1 has no defined readback protocol.
		return fmt.Errorf("%w: read requires a D/C select line", ErrUnsupported)
	}
	return d.option3Read(cmd, dst)
}

// IsDisplayOn reads the power mode register and reports whether display
// output is verifiably on: out of sleep, in normal mode, display enabled,
// nothing else set. Read failures and write-only panels report false,
// never an error.
func (d *Dev) IsDisplayOn() bool {
	var val [1]byte
	if err := d.CommandBuf(GetPowerMode, val[:]); err != nil {
		return false
	}
	v := val[0] &^ powerModeReservedMask
	return v == PowerModeDisplayOn|PowerModeNormalMode|PowerModeSleepOut
}

// SwapBytes reports whether the caller must put 16-bit pixel payloads in
// wire byte order (big-endian) before bulk writes: true on little-endian
// hosts whose bus cannot frame 16-bit words, making the byte-preserving
// 8-bit path the only one available.
func (d *Dev) SwapBytes() bool {
	return d.swapBytes
}

func (d *Dev) traceCommand(cmd byte, par []byte) {
	if d.logf == nil {
		return
	}
	switch {
	case len(par) == 0:
		d.logf("cmd=%02x", cmd)
	case len(par) <= 32:
		d.logf("cmd=%02x, par=%x", cmd, par)
	default:
		d.logf("cmd=%02x, len=%d", cmd, len(par))
	}
}

func hostLittleEndian() bool {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 0x0001)
	return b[0] == 0x01
}
