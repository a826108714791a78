package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/tinydisplays/mipidbi"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

// fakeTransport serves queued read payloads, one per read leg.
type fakeTransport struct {
	reads [][]byte
	err   error
}

func (f *fakeTransport) Tx(tr []mipidbi.Transfer) error {
	if f.err != nil {
		return f.err
	}
	for _, t := range tr {
		if t.R != nil && len(f.reads) > 0 {
			copy(t.R, f.reads[0])
			f.reads = f.reads[1:]
		}
	}
	return nil
}

func (f *fakeTransport) MaxTxSize(limit int) int    { return limit }
func (f *fakeTransport) SupportsBits(bits int) bool { return bits == 8 }
func (f *fakeTransport) MaxSpeed() physic.Frequency { return 8 * physic.MegaHertz }

func newReportDev(t *testing.T, f *fakeTransport) *mipidbi.Dev {
	t.Helper()
	d, err := mipidbi.New(f, &gpiotest.Pin{N: "DC", Num: 25}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestReportDecodesRegisters(t *testing.T) {
	f := &fakeTransport{reads: [][]byte{
		{0x12, 0x34, 0xD6, 0x80},       // display ID, raw with dummy clock
		{0x00, 0x00, 0x00, 0x00, 0x00}, // display status, raw with dummy clock
		{0x1C},                         // power mode
		{0x08},                         // address mode: BGR
		{0x55},                         // pixel format: 16bpp on both interfaces
		{0x02},                         // image mode: GC2
		{0x80},                         // signal mode: tearing effect on
		{0xC0},                         // diagnostic: loading and functionality OK
	}}
	var out strings.Builder
	report(&out, newReportDev(t, f))
	got := out.String()

	for _, want := range []string{
		"Display ID (04h=2469ad):",
		"    ID1 = 0x24\n    ID2 = 0x69\n    ID3 = 0xad\n",
		"Display status (09h=00000000):",
		"    D17=0: Sleep: In\n",
		"Power mode (0Ah=1c):",
		"    D4=1: Sleep Out Mode\n",
		"    D2=1: Display is On\n",
		"    D3=1: RGB/BGR Order: BGR\n",
		"    D[6:4]=5: DPI: 16 bits/pixel\n",
		"    D[2:0]=5: DBI: 16 bits/pixel\n",
		"    D[2:0]=2: Gamma Curve Selection: GC2\n",
		"    D7=1: Tearing Effect Line: On\n",
		"    D7=1: Register Loading Detection: OK\n",
		"    D6=1: Functionality Detection: OK\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report output is missing %q\n%s", want, got)
		}
	}
}

func TestReportContinuesAfterFailures(t *testing.T) {
	f := &fakeTransport{err: errors.New("bus gone")}
	var out strings.Builder
	report(&out, newReportDev(t, f))

	// Every register read fails individually; the report covers all
	// eight regardless.
	if got := strings.Count(out.String(), "failed"); got != 8 {
		t.Errorf("failed register reads reported = %d, want 8\n%s", got, out.String())
	}
}
