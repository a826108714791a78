package mipidbi

// Display Command Set (DCS) command bytes, the MIPI-standard vocabulary
// for addressing controller registers. Only the subset relevant to DBI
// panels is listed.
const (
	Nop                  byte = 0x00
	SoftReset            byte = 0x01
	GetDisplayID         byte = 0x04
	GetRedChannel        byte = 0x06
	GetGreenChannel      byte = 0x07
	GetBlueChannel       byte = 0x08
	GetDisplayStatus     byte = 0x09
	GetPowerMode         byte = 0x0A
	GetAddressMode       byte = 0x0B
	GetPixelFormat       byte = 0x0C
	GetDisplayMode       byte = 0x0D
	GetSignalMode        byte = 0x0E
	GetDiagnosticResult  byte = 0x0F
	EnterSleepMode       byte = 0x10
	ExitSleepMode        byte = 0x11
	EnterPartialMode     byte = 0x12
	EnterNormalMode      byte = 0x13
	ExitInvertMode       byte = 0x20
	EnterInvertMode      byte = 0x21
	SetGammaCurve        byte = 0x26
	SetDisplayOff        byte = 0x28
	SetDisplayOn         byte = 0x29
	SetColumnAddress     byte = 0x2A
	SetPageAddress       byte = 0x2B
	WriteMemoryStart     byte = 0x2C
	ReadMemoryStart      byte = 0x2E
	EnterPartialArea     byte = 0x30
	SetTearOff           byte = 0x34
	SetTearOn            byte = 0x35
	SetAddressMode       byte = 0x36
	ExitIdleMode         byte = 0x38
	EnterIdleMode        byte = 0x39
	SetPixelFormat       byte = 0x3A
	WriteMemoryContinue  byte = 0x3C
	ReadMemoryContinue   byte = 0x3E
	GetScanline          byte = 0x45
	SetDisplayBrightness byte = 0x51
	GetDisplayBrightness byte = 0x52
	WriteControlDisplay  byte = 0x53
	GetControlDisplay    byte = 0x54
	WritePowerSave       byte = 0x55
	GetPowerSave         byte = 0x56
	SetCABCMinBrightness byte = 0x5E
	GetCABCMinBrightness byte = 0x5F
	ReadDDBStart         byte = 0xA1
	ReadDDBContinue      byte = 0xA8
)

// Bits of the GetPowerMode response byte.
const (
	PowerModeDisplayOn  byte = 1 << 2 // display output enabled
	PowerModeNormalMode byte = 1 << 3 // normal (non-partial) mode
	PowerModeSleepOut   byte = 1 << 4 // out of sleep mode
	PowerModePartial    byte = 1 << 5
	PowerModeIdle       byte = 1 << 6
	PowerModeBooster    byte = 1 << 7

	powerModeReservedMask = 1<<0 | 1<<1 | 1<<7
)

// dcsReadCommands is the default read-command set: the standard DCS read
// registers most MIPI-compliant controllers implement.
var dcsReadCommands = []byte{
	GetDisplayID,
	GetRedChannel,
	GetGreenChannel,
	GetBlueChannel,
	GetDisplayStatus,
	GetPowerMode,
	GetAddressMode,
	GetPixelFormat,
	GetDisplayMode,
	GetSignalMode,
	GetDiagnosticResult,
	ReadMemoryStart,
	ReadMemoryContinue,
	GetScanline,
	GetDisplayBrightness, // MIPI DCS 1.3
	GetControlDisplay,    // MIPI DCS 1.3
	GetPowerSave,         // MIPI DCS 1.3
	GetCABCMinBrightness, // MIPI DCS 1.3
	ReadDDBStart,
	ReadDDBContinue,
}
