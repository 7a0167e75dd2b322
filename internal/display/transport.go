package display

import (
	"errors"
	"fmt"
)

// ErrNoAck is returned when the controller does not acknowledge a transfer.
var ErrNoAck = errors.New("display: no acknowledge from device")

// Transport moves command and data bytes to the panel controller. Both calls
// block until the transfer completes or fails; neither retries.
type Transport interface {
	WriteCommand(c byte) error
	WriteData(p []byte) error
}

// Bus is the subset of an I²C controller the transport needs. TinyGo's
// machine.I2C and the drivers package's I2C interface both satisfy it.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// SSD1306 addressing and control bytes.
const (
	Address uint16 = 0x3C

	controlCommand byte = 0x80 // Co=1, D/C#=0: one command follows
	controlStream  byte = 0x00 // Co=0, D/C#=0: command stream
	controlData    byte = 0x40 // Co=0, D/C#=1: GDDRAM data stream

	// DataChunk is the largest data payload sent in one bus transaction.
	DataChunk = 16
)

// SSD1306 commands used by the init sequence and the flush preamble.
const (
	CmdDisplayOff     byte = 0xAE
	CmdDisplayOn      byte = 0xAF
	CmdMemoryMode     byte = 0x20
	CmdColumnAddr     byte = 0x21
	CmdPageAddr       byte = 0x22
	CmdContrast       byte = 0x81
	CmdChargePump     byte = 0x8D
	CmdSegRemap       byte = 0xA1
	CmdResumeRAM      byte = 0xA4
	CmdNormal         byte = 0xA6
	CmdInvert         byte = 0xA7
	CmdMultiplex      byte = 0xA8
	CmdComScanDec     byte = 0xC8
	CmdDisplayOffset  byte = 0xD3
	CmdClockDiv       byte = 0xD5
	CmdPrecharge      byte = 0xD9
	CmdComPins        byte = 0xDA
	CmdVcomDetect     byte = 0xDB
	CmdStartLine      byte = 0x40
	CmdDeactivateScrl byte = 0x2E
)

// InitSequence powers the panel up in horizontal addressing mode with the
// charge pump enabled.
var InitSequence = [...]byte{
	CmdDisplayOff,
	CmdMemoryMode, 0x00,
	CmdStartLine,
	CmdSegRemap,
	CmdMultiplex, Height - 1,
	CmdComScanDec,
	CmdDisplayOffset, 0x00,
	CmdComPins, 0x12,
	CmdClockDiv, 0x80,
	CmdPrecharge, 0xF1,
	CmdVcomDetect, 0x20,
	CmdContrast, 0xFF,
	CmdResumeRAM,
	CmdNormal,
	CmdChargePump, 0x14,
	CmdDeactivateScrl,
	CmdDisplayOn,
}

// I2CTransport speaks the SSD1306 I²C framing: every transaction starts with
// a control byte selecting command or data.
type I2CTransport struct {
	bus     Bus
	addr    uint16
	scratch [DataChunk + 1]byte
}

// NewI2CTransport binds a transport to a bus and device address.
func NewI2CTransport(bus Bus, addr uint16) *I2CTransport {
	return &I2CTransport{bus: bus, addr: addr}
}

// WriteCommand sends one command byte.
func (t *I2CTransport) WriteCommand(c byte) error {
	t.scratch[0] = controlCommand
	t.scratch[1] = c
	if err := t.bus.Tx(t.addr, t.scratch[:2], nil); err != nil {
		return fmt.Errorf("display: command 0x%02X: %w", c, err)
	}
	return nil
}

// WriteData streams p to GDDRAM in DataChunk-sized transactions.
func (t *I2CTransport) WriteData(p []byte) error {
	for len(p) > 0 {
		n := copy(t.scratch[1:], p)
		t.scratch[0] = controlData
		if err := t.bus.Tx(t.addr, t.scratch[:n+1], nil); err != nil {
			return fmt.Errorf("display: data (%d bytes): %w", n, err)
		}
		p = p[n:]
	}
	return nil
}
