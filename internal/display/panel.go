package display

import (
	"fmt"
	"sync"
)

// Panel emulates an SSD1306 on the far side of the bus. Host simulators plug
// it under an I2CTransport so the full command stream is decoded exactly as
// the hardware would, and tests use it to inspect what actually arrived.
//
// Tx runs on the game goroutine while Snapshot is read from a UI goroutine;
// the mutex covers GDDRAM and the addressing state.
type Panel struct {
	mu sync.Mutex

	gddram [BufferLen]byte

	on       bool
	inverted bool
	contrast byte

	colStart, colEnd   int
	pageStart, pageEnd int
	col, page          int

	// Pending multi-byte command.
	cmd      byte
	argsLeft int
	args     [2]byte
	argN     int

	frames  uint64
	stalled bool
	txCount uint64
}

// NewPanel returns a powered-off panel addressing the whole GDDRAM.
func NewPanel() *Panel {
	return &Panel{
		colEnd:   Width - 1,
		pageEnd:  Pages - 1,
		contrast: 0x7F,
	}
}

// Stall makes every following transaction fail with ErrNoAck until called
// again with false. It models a disconnected or hung bus.
func (p *Panel) Stall(stalled bool) {
	p.mu.Lock()
	p.stalled = stalled
	p.mu.Unlock()
}

// Tx implements Bus.
func (p *Panel) Tx(addr uint16, w, r []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stalled || addr != Address {
		return ErrNoAck
	}
	if len(w) == 0 {
		return nil
	}
	p.txCount++
	control, payload := w[0], w[1:]
	switch control {
	case controlCommand, controlStream:
		for _, b := range payload {
			p.command(b)
		}
	case controlData:
		for _, b := range payload {
			p.data(b)
		}
	default:
		return fmt.Errorf("display: panel: unknown control byte 0x%02X", control)
	}
	return nil
}

func argCount(cmd byte) int {
	switch cmd {
	case CmdColumnAddr, CmdPageAddr:
		return 2
	case CmdMemoryMode, CmdContrast, CmdMultiplex, CmdDisplayOffset,
		CmdComPins, CmdClockDiv, CmdPrecharge, CmdVcomDetect, CmdChargePump:
		return 1
	}
	return 0
}

func (p *Panel) command(b byte) {
	if p.argsLeft > 0 {
		p.args[p.argN] = b
		p.argN++
		p.argsLeft--
		if p.argsLeft == 0 {
			p.apply(p.cmd)
		}
		return
	}
	if n := argCount(b); n > 0 {
		p.cmd, p.argsLeft, p.argN = b, n, 0
		return
	}
	switch b {
	case CmdDisplayOn:
		p.on = true
	case CmdDisplayOff:
		p.on = false
	case CmdInvert:
		p.inverted = true
	case CmdNormal:
		p.inverted = false
	}
}

func (p *Panel) apply(cmd byte) {
	switch cmd {
	case CmdColumnAddr:
		p.colStart = int(p.args[0]) % Width
		p.colEnd = int(p.args[1]) % Width
		p.col = p.colStart
	case CmdPageAddr:
		p.pageStart = int(p.args[0]) % Pages
		p.pageEnd = int(p.args[1]) % Pages
		p.page = p.pageStart
	case CmdContrast:
		p.contrast = p.args[0]
	}
}

// data writes one GDDRAM byte in horizontal addressing mode.
func (p *Panel) data(b byte) {
	p.gddram[p.page*Width+p.col] = b
	p.col++
	if p.col <= p.colEnd {
		return
	}
	p.col = p.colStart
	p.page++
	if p.page > p.pageEnd {
		p.page = p.pageStart
		p.frames++
	}
}

// Pixel reports whether the panel is showing pixel (x, y) lit, taking power
// and inversion into account.
func (p *Panel) Pixel(x, y int) bool {
	if uint(x) >= Width || uint(y) >= Height {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.on {
		return false
	}
	lit := p.gddram[(y>>3)*Width+x]&(1<<uint(y&7)) != 0
	return lit != p.inverted
}

// Snapshot copies GDDRAM into dst and reports whether the panel is on.
func (p *Panel) Snapshot(dst *[BufferLen]byte) (on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	*dst = p.gddram
	if p.inverted {
		for i := range dst {
			dst[i] = ^dst[i]
		}
	}
	return p.on
}

// Frames is the number of complete GDDRAM windows written.
func (p *Panel) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// On reports the display power state.
func (p *Panel) On() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.on
}

// Contrast reports the last contrast setting.
func (p *Panel) Contrast() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contrast
}

// SnapshotPixel reads pixel (x, y) from a buffer filled by Snapshot.
func SnapshotPixel(buf *[BufferLen]byte, x, y int) bool {
	if uint(x) >= Width || uint(y) >= Height {
		return false
	}
	return buf[(y>>3)*Width+x]&(1<<uint(y&7)) != 0
}
