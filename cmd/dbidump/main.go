// Command dbidump prints the diagnostic registers of a MIPI DBI Type C
// display controller: display ID, display status, power mode, address
// mode, pixel format, image mode, signal mode and self-diagnostic result.
//
// The panel must be wired with a D/C select line (DBI Type C Option 3)
// and a connected MISO; the in-band Option 1 encoding has no read path.
//
//	dbidump -dc GPIO25
//	dbidump -config ili9341.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tinydisplays/mipidbi"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	configPath := flag.String("config", "", "path to a YAML panel profile")
	spiPort := flag.String("spi", "", "SPI port name (overrides the profile)")
	dcPin := flag.String("dc", "", "GPIO name of the D/C select line (overrides the profile)")
	speedHz := flag.Int64("speed", 0, "bus clock in hertz (overrides the profile)")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Arg(0))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *spiPort != "" {
		cfg.SPI = *spiPort
	}
	if *dcPin != "" {
		cfg.DC = *dcPin
	}
	if *speedHz != 0 {
		cfg.SpeedHz = *speedHz
	}
	if cfg.DC == "" {
		return fmt.Errorf("the register report needs the read path; specify the D/C line with -dc")
	}
	readCmds, err := cfg.readCommands()
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	p, err := spireg.Open(cfg.SPI)
	if err != nil {
		return err
	}
	defer p.Close()

	dc := gpioreg.ByName(cfg.DC)
	if dc == nil {
		return fmt.Errorf("no GPIO named %q", cfg.DC)
	}

	dev, err := mipidbi.NewSPI(p, dc, &mipidbi.Opts{
		Speed:        cfg.speed(),
		BitsPerWord:  cfg.BitsPerWord,
		WriteOnly:    cfg.WriteOnly,
		ReadCommands: readCmds,
	})
	if err != nil {
		return err
	}

	report(os.Stdout, dev)
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("dbidump: %v", err)
	}
}
