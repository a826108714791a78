package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Config is a panel profile: how the controller is wired and connected.
type Config struct {
	// SPI is the port name for spireg.Open. Empty selects the first
	// available port.
	SPI string `yaml:"spi"`

	// DC is the GPIO name of the data/command select line. The report
	// uses the read path, which requires Option 3 wiring, so this must
	// be set.
	DC string `yaml:"dc"`

	// SpeedHz is the bus clock in hertz. Zero keeps the package default.
	SpeedHz int64 `yaml:"speed_hz"`

	// BitsPerWord lists native word widths of the SPI controller beyond
	// 8, e.g. [16] for controllers that frame 16-bit words.
	BitsPerWord []int `yaml:"bits_per_word"`

	// WriteOnly marks panels with MISO not connected. The report is
	// pointless on such panels but the flag is honored.
	WriteOnly bool `yaml:"write_only"`

	// ReadCommands overrides the standard DCS read-command set. Values
	// are command bytes. Empty keeps the default set.
	ReadCommands []int `yaml:"read_commands"`
}

// loadConfig reads a YAML panel profile. An empty path returns the zero
// profile, letting the flags fill everything in.
func loadConfig(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) speed() physic.Frequency {
	return physic.Frequency(c.SpeedHz) * physic.Hertz
}

func (c *Config) readCommands() ([]byte, error) {
	if c.ReadCommands == nil {
		return nil, nil
	}
	cmds := make([]byte, len(c.ReadCommands))
	for i, v := range c.ReadCommands {
		if v < 0 || v > 0xFF {
			return nil, fmt.Errorf("read_commands[%d]: %#x is not a command byte", i, v)
		}
		cmds[i] = byte(v)
	}
	return cmds, nil
}
