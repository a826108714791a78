// Package mipidbi sends commands and data to MIPI DBI Type C display
// controllers over SPI.
//
// MIPI DBI Type C is the SPI flavour of the Display Bus Interface. Every
// byte on the bus carries a data/command (D/C) flag telling the controller
// whether it is a DCS command or a parameter/pixel byte. Type C defines
// several ways to carry that flag, and this package implements the two
// that matter in practice:
//
//   - Option 1: the D/C flag travels in-band as a ninth bit per word. When
//     the SPI controller can frame 9-bit words natively, each byte is sent
//     as one 9-bit word. When it can only frame 8-bit words, the common
//     case, eight 9-bit words are repacked into nine raw bytes (see the
//     nineword subpackage for the exact layout).
//   - Option 3: the D/C flag is a dedicated GPIO line and the bus carries
//     plain 8-bit (or, for pixel data, 16-bit) words. Only this wiring has
//     a read path.
//
// The package is a transport-encoding layer, not a display driver: it
// issues and reads DCS bytes and leaves pixel formats, dirty rectangles,
// power sequencing and backlight to the caller.
//
// # Basic usage
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/tinydisplays/mipidbi"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		p, err := spireg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer p.Close()
//
//		// D/C on a GPIO selects Option 3; pass nil for Option 1.
//		dev, err := mipidbi.NewSPI(p, gpioreg.ByName("GPIO25"), nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		dev.Command(mipidbi.ExitSleepMode)
//		dev.Command(mipidbi.SetPixelFormat, 0x55) // RGB565
//		dev.Command(mipidbi.SetDisplayOn)
//	}
//
// # Pixel data and byte order
//
// Bulk pixel writes go through CommandBuf with WriteMemoryStart. The
// controller expects 16-bit pixels most-significant byte first. On a
// little-endian host whose SPI controller cannot frame 16-bit words, the
// hardware cannot reorder the bytes, so the caller must: check SwapBytes
// and put the pixel buffer in wire order before flushing.
//
// # Reading
//
// ReadCommand serves the commands registered in the read set (by default
// the standard DCS read registers). Reads are clocked below the write
// speed and, for the legacy GetDisplayID and GetDisplayStatus commands,
// compensate for the dummy clock those parts insert before valid data.
// Panels wired without MISO should set Opts.WriteOnly.
//
// # Concurrency
//
// All calls are synchronous and issue one or more blocking bus transfers.
// A Dev holds no mutable state between calls, but the bus is a serialized
// resource: do not issue overlapping commands on one instance.
package mipidbi
