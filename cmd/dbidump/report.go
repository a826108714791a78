package main

import (
	"fmt"
	"io"

	"github.com/tinydisplays/mipidbi"
)

// report reads the standard DCS diagnostic registers and pretty-prints
// their bit fields. Registers the panel does not implement fail one by
// one without aborting the rest of the report.
func report(w io.Writer, d *mipidbi.Dev) {
	var buf [4]byte

	if readReg(w, d, mipidbi.GetDisplayID, "Display ID", buf[:3]) {
		fmt.Fprintf(w, "    ID1 = 0x%02x\n", buf[0])
		fmt.Fprintf(w, "    ID2 = 0x%02x\n", buf[1])
		fmt.Fprintf(w, "    ID3 = 0x%02x\n", buf[2])
	}

	if readReg(w, d, mipidbi.GetDisplayStatus, "Display status", buf[:4]) {
		stat := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])

		bitOnOff(w, "Booster voltage status:", stat, 31)
		bitVal(w, "Row address order", stat, 30)
		bitVal(w, "Column address order", stat, 29)
		bitVal(w, "Row/column exchange", stat, 28)
		bitText(w, "Vertical refresh:", stat, 27, "Bottom to Top", "Top to Bottom")
		bitText(w, "RGB/BGR order:", stat, 26, "BGR", "RGB")
		bitText(w, "Horizontal refresh order:", stat, 25, "Right to Left", "Left to Right")
		bitReserved(w, stat, 24, 23)
		bitArray(w, "Interface color pixel format:", stat, 22, 20)
		bitOnOff(w, "Idle mode:", stat, 19)
		bitOnOff(w, "Partial mode:", stat, 18)
		bitText(w, "Sleep:", stat, 17, "Out", "In")
		bitOnOff(w, "Display normal mode:", stat, 16)
		bitOnOff(w, "Vertical scrolling status:", stat, 15)
		bitReserved(w, stat, 14, 14)
		bitVal(w, "Inversion status", stat, 13)
		bitVal(w, "All pixel ON", stat, 12)
		bitVal(w, "All pixel OFF", stat, 11)
		bitOnOff(w, "Display:", stat, 10)
		bitOnOff(w, "Tearing effect line:", stat, 9)
		bitArray(w, "Gamma curve selection:", stat, 8, 6)
		bitText(w, "Tearing effect line mode:", stat, 5,
			"Mode 2, both H-Blanking and V-Blanking",
			"Mode 1, V-Blanking only")
		bitReserved(w, stat, 4, 0)
	}

	if readReg(w, d, mipidbi.GetPowerMode, "Power mode", buf[:1]) {
		val := uint32(buf[0])
		bitText(w, "Booster", val, 7, "On", "Off or faulty")
		bitOnOff(w, "Idle Mode", val, 6)
		bitOnOff(w, "Partial Mode", val, 5)
		bitText(w, "Sleep", val, 4, "Out Mode", "In Mode")
		bitOnOff(w, "Display Normal Mode", val, 3)
		bitOnOff(w, "Display is", val, 2)
		bitReserved(w, val, 1, 0)
	}

	if readReg(w, d, mipidbi.GetAddressMode, "Address mode", buf[:1]) {
		val := uint32(buf[0])
		bitText(w, "Page Address Order:", val, 7, "Bottom to Top", "Top to Bottom")
		bitText(w, "Column Address Order:", val, 6, "Right to Left", "Left to Right")
		bitText(w, "Page/Column Order:", val, 5, "Reverse Mode", "Normal Mode")
		bitText(w, "Line Address Order: LCD Refresh", val, 4, "Bottom to Top", "Top to Bottom")
		bitText(w, "RGB/BGR Order:", val, 3, "BGR", "RGB")
		bitText(w, "Display Data Latch Data Order: LCD Refresh", val, 2, "Right to Left", "Left to Right")
		bitReserved(w, val, 1, 0)
	}

	if readReg(w, d, mipidbi.GetPixelFormat, "Pixel format", buf[:1]) {
		val := uint32(buf[0])
		dpi := (buf[0] >> 4) & 0x7
		dbi := buf[0] & 0x7
		bitReserved(w, val, 7, 7)
		fmt.Fprintf(w, "    D[6:4]=%d: DPI: %s\n", dpi, pixelFormatStr(dpi))
		bitReserved(w, val, 3, 3)
		fmt.Fprintf(w, "    D[2:0]=%d: DBI: %s\n", dbi, pixelFormatStr(dbi))
	}

	if readReg(w, d, mipidbi.GetDisplayMode, "Image Mode", buf[:1]) {
		val := uint32(buf[0])
		gc := buf[0] & 0x7
		bitOnOff(w, "Vertical Scrolling Status:", val, 7)
		bitReserved(w, val, 6, 6)
		bitOnOff(w, "Inversion:", val, 5)
		bitReserved(w, val, 4, 3)
		if gc < 4 {
			fmt.Fprintf(w, "    D[2:0]=%d: Gamma Curve Selection: GC%d\n", gc, gc)
		} else {
			fmt.Fprintf(w, "    D[2:0]=%d: Gamma Curve Selection: Reserved\n", gc)
		}
	}

	if readReg(w, d, mipidbi.GetSignalMode, "Signal Mode", buf[:1]) {
		val := uint32(buf[0])
		bitOnOff(w, "Tearing Effect Line:", val, 7)
		bitText(w, "Tearing Effect Line Output Mode: Mode", val, 6, "2", "1")
		bitReserved(w, val, 5, 0)
	}

	if readReg(w, d, mipidbi.GetDiagnosticResult, "Diagnostic result", buf[:1]) {
		val := uint32(buf[0])
		bitText(w, "Register Loading Detection:", val, 7, "OK", "Fault or reset")
		bitText(w, "Functionality Detection:", val, 6, "OK", "Fault or reset")
		bitText(w, "Chip Attachment Detection:", val, 5, "Fault", "OK or unimplemented")
		bitText(w, "Display Glass Break Detection:", val, 4, "Fault", "OK or unimplemented")
		bitReserved(w, val, 3, 0)
	}
}

func readReg(w io.Writer, d *mipidbi.Dev, cmd byte, desc string, buf []byte) bool {
	if err := d.CommandBuf(cmd, buf); err != nil {
		fmt.Fprintf(w, "\n%s: command %02Xh failed: %v\n", desc, cmd, err)
		return false
	}
	fmt.Fprintf(w, "\n%s (%02Xh=%x):\n", desc, cmd, buf)
	return true
}

func bit(val uint32, n uint) uint32 {
	return val >> n & 1
}

func bitVal(w io.Writer, desc string, val uint32, n uint) {
	fmt.Fprintf(w, "    D%d=%d: %s\n", n, bit(val, n), desc)
}

func bitText(w io.Writer, desc string, val uint32, n uint, on, off string) {
	s := off
	if bit(val, n) != 0 {
		s = on
	}
	fmt.Fprintf(w, "    D%d=%d: %s %s\n", n, bit(val, n), desc, s)
}

func bitOnOff(w io.Writer, desc string, val uint32, n uint) {
	bitText(w, desc, val, n, "On", "Off")
}

func bitReserved(w io.Writer, val uint32, end, start uint) {
	for n := end; ; n-- {
		bitVal(w, "Reserved", val, n)
		if n == start {
			return
		}
	}
}

func bitArray(w io.Writer, desc string, val uint32, end, start uint) {
	bits := val >> start & (1<<(end-start+1) - 1)
	fmt.Fprintf(w, "    D[%d:%d]=%d: %s ", end, start, bits, desc)
	for n := end; ; n-- {
		fmt.Fprintf(w, "%d ", bit(val, n))
		if n == start {
			break
		}
	}
	fmt.Fprintln(w)
}

func pixelFormatStr(v byte) string {
	switch v {
	case 0, 4:
		return "Reserved"
	case 1:
		return "3 bits/pixel"
	case 2:
		return "8 bits/pixel"
	case 3:
		return "12 bits/pixel"
	case 5:
		return "16 bits/pixel"
	case 6:
		return "18 bits/pixel"
	case 7:
		return "24 bits/pixel"
	default:
		return "Illegal format"
	}
}
