package mipidbi

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

// fakeTransport records every transaction and serves queued read
// payloads.
type fakeTransport struct {
	maxTx int   // 0 means unlimited
	bits  []int // widths beyond 8
	speed physic.Frequency

	txs   [][]Transfer // recorded transactions, buffers deep-copied
	reads [][]byte     // payloads for read legs, consumed in order

	failAt int // 1-based transaction index to fail at, 0 = never
	err    error
}

func (f *fakeTransport) Tx(tr []Transfer) error {
	call := make([]Transfer, len(tr))
	for i, t := range tr {
		c := t
		c.W = append([]byte(nil), t.W...)
		if t.R != nil {
			if len(f.reads) > 0 {
				copy(t.R, f.reads[0])
				f.reads = f.reads[1:]
			}
			c.R = append([]byte(nil), t.R...)
		}
		call[i] = c
	}
	f.txs = append(f.txs, call)
	if f.failAt != 0 && len(f.txs) == f.failAt {
		return f.err
	}
	return nil
}

func (f *fakeTransport) MaxTxSize(limit int) int {
	if f.maxTx > 0 && f.maxTx < limit {
		return f.maxTx
	}
	return limit
}

func (f *fakeTransport) SupportsBits(bits int) bool {
	if bits == 8 {
		return true
	}
	for _, b := range f.bits {
		if b == bits {
			return true
		}
	}
	return false
}

func (f *fakeTransport) MaxSpeed() physic.Frequency {
	return f.speed
}

// dcPin records the sequence of levels driven on the select line.
type dcPin struct {
	gpiotest.Pin
	levels []gpio.Level
}

func (p *dcPin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return p.Pin.Out(l)
}

func newOption3Dev(t *testing.T, f *fakeTransport, opts *Opts) (*Dev, *dcPin) {
	t.Helper()
	dc := &dcPin{Pin: gpiotest.Pin{N: "DC", Num: 25}}
	d, err := New(f, dc, opts)
	if err != nil {
		t.Fatal(err)
	}
	return d, dc
}

func TestReadCommandClassifier(t *testing.T) {
	tests := []struct {
		name string
		opts *Opts
		cmd  byte
		want bool
	}{
		{"default set has power mode", nil, GetPowerMode, true},
		{"default set has display id", nil, GetDisplayID, true},
		{"default set rejects memory write", nil, WriteMemoryStart, false},
		{"custom set member", &Opts{ReadCommands: []byte{0xDA}}, 0xDA, true},
		{"custom set non-member", &Opts{ReadCommands: []byte{0xDA}}, GetPowerMode, false},
		{"empty set classifies all as writes", &Opts{ReadCommands: []byte{}}, GetPowerMode, false},
		{"nop is never a read command", &Opts{ReadCommands: []byte{Nop, GetPowerMode}}, Nop, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(&fakeTransport{}, nil, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := d.isReadCommand(tt.cmd); got != tt.want {
				t.Errorf("isReadCommand(%#02x) = %v, want %v", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestCommandBufRoutesReadCommands(t *testing.T) {
	f := &fakeTransport{speed: 8 * physic.MegaHertz, reads: [][]byte{{0x1C}}}
	d, _ := newOption3Dev(t, f, nil)

	var val [1]byte
	if err := d.CommandBuf(GetPowerMode, val[:]); err != nil {
		t.Fatal(err)
	}
	if val[0] != 0x1C {
		t.Errorf("read value = %#02x, want 0x1c", val[0])
	}
	if len(f.txs) != 1 || len(f.txs[0]) != 2 {
		t.Fatalf("expected one two-leg transaction, got %d", len(f.txs))
	}
	if got := f.txs[0][0].W; len(got) != 1 || got[0] != GetPowerMode {
		t.Errorf("command leg = %#v", got)
	}
}

func TestReadCommandRejectsUnregistered(t *testing.T) {
	f := &fakeTransport{}
	d, _ := newOption3Dev(t, f, nil)

	err := d.ReadCommand(SetDisplayOn, make([]byte, 1))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
	if len(f.txs) != 0 {
		t.Error("bus was accessed")
	}
}

func TestReadCommandWithoutSelectLine(t *testing.T) {
	d, err := New(&fakeTransport{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.ReadCommand(GetPowerMode, make([]byte, 1)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestOption1CommandOnReadCommand(t *testing.T) {
	// Under Option 1 even a write of a registered read command has
	// nowhere to go: it is routed to the read path, which Option 1
	// lacks.
	f := &fakeTransport{}
	d, err := New(f, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf [1]byte
	if err := d.CommandBuf(GetPowerMode, buf[:]); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
	if len(f.txs) != 0 {
		t.Error("bus was accessed")
	}
}

func TestIsDisplayOn(t *testing.T) {
	tests := []struct {
		name string
		val  byte
		want bool
	}{
		{"display normal sleep-out", 0x1C, true},
		{"reserved bits are masked", 0x1C | 0x83, true},
		{"display off", 0x18, false},
		{"still sleeping", 0x0C, false},
		{"partial mode set", 0x3C, false},
		{"idle mode set", 0x5C, false},
		{"all zero", 0x00, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeTransport{reads: [][]byte{{tt.val}}}
			d, _ := newOption3Dev(t, f, nil)
			if got := d.IsDisplayOn(); got != tt.want {
				t.Errorf("IsDisplayOn() with %#02x = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestIsDisplayOnReadFailure(t *testing.T) {
	f := &fakeTransport{failAt: 1, err: errors.New("bus gone")}
	d, _ := newOption3Dev(t, f, nil)
	if d.IsDisplayOn() {
		t.Error("IsDisplayOn() = true on a failing read")
	}

	// A write-only panel reports false too, never an error.
	d2, _ := newOption3Dev(t, &fakeTransport{}, &Opts{WriteOnly: true})
	if d2.IsDisplayOn() {
		t.Error("IsDisplayOn() = true on a write-only panel")
	}
}

func TestSwapBytes(t *testing.T) {
	no16, err := New(&fakeTransport{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := no16.SwapBytes(), hostLittleEndian(); got != want {
		t.Errorf("SwapBytes() without 16-bit framing = %v, want %v", got, want)
	}

	with16, err := New(&fakeTransport{bits: []int{16}}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if with16.SwapBytes() {
		t.Error("SwapBytes() = true although the bus frames 16-bit words")
	}
}

func TestCommandDeterministic(t *testing.T) {
	run := func() [][]Transfer {
		f := &fakeTransport{maxTx: 32}
		d, err := New(f, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		par := make([]byte, 21)
		for i := range par {
			par[i] = byte(i * 7)
		}
		if err := d.CommandBuf(WriteMemoryStart, par); err != nil {
			t.Fatal(err)
		}
		return f.txs
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("transaction counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		for j := range a[i] {
			if string(a[i][j].W) != string(b[i][j].W) {
				t.Errorf("transaction %d leg %d differs", i, j)
			}
		}
	}
}

func TestCommandTrace(t *testing.T) {
	var lines []string
	f := &fakeTransport{}
	d, err := New(f, nil, &Opts{Logf: func(format string, v ...any) {
		lines = append(lines, format)
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Command(SetDisplayOn); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Errorf("trace lines = %d, want 1", len(lines))
	}
}
