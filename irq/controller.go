// Package irq implements the PSX interrupt controller: the I_STAT and
// I_MASK registers at 0x1F801070/0x1F801074 and the pending line the CPU
// samples between instructions.
package irq

import (
	"log/slog"

	"github.com/psxcore/psxcore/mem"
)

// Line is an interrupt request line, one bit per source.
type Line uint16

// Interrupt sources.
const (
	LineVBlank     Line = 1 << 0
	LineGPU        Line = 1 << 1
	LineCDROM      Line = 1 << 2
	LineDMA        Line = 1 << 3
	LineTimer0     Line = 1 << 4
	LineTimer1     Line = 1 << 5
	LineTimer2     Line = 1 << 6
	LineController Line = 1 << 7
	LineSIO        Line = 1 << 8
	LineSPU        Line = 1 << 9
	LineLightpen   Line = 1 << 10
)

// Register offsets within the controller's bus mapping.
const (
	regStatus = 0x0 // I_STAT
	regMask   = 0x4 // I_MASK
)

// BusBase is the controller's offset within the I/O window.
const BusBase = 0x70

// BusSize is the length of the controller's register block.
const BusSize = 0x8

// Controller latches interrupt requests and gates them through the mask.
// It resets with everything cleared and masked.
type Controller struct {
	status uint16
	mask   uint16

	log *slog.Logger
}

// NewController creates an interrupt controller.
func NewController(log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{log: log}
}

// Request latches the given line(s) into I_STAT. The latch holds until
// software acknowledges it, regardless of the mask.
func (c *Controller) Request(line Line) {
	c.status |= uint16(line)
	c.log.Debug("irq requested", "line", uint16(line), "status", c.status)
}

// Acknowledge clears the status bits that are set in value.
func (c *Controller) Acknowledge(value uint16) {
	c.status &^= value
}

// Pending reports whether any unmasked interrupt is latched.
func (c *Controller) Pending() bool {
	return c.status&c.mask != 0
}

// Status returns the current I_STAT value.
func (c *Controller) Status() uint16 {
	return c.status
}

// Mask returns the current I_MASK value.
func (c *Controller) Mask() uint16 {
	return c.mask
}

// SetMask sets I_MASK.
func (c *Controller) SetMask(value uint16) {
	c.mask = value
}

// Read implements mem.Handler. Both registers are 16 bits wide and read
// the same through any access width. The controller never faults.
func (c *Controller) Read(width mem.Width, offset uint32) (uint32, error) {
	switch offset &^ 0x3 {
	case regStatus:
		return uint32(c.status), nil
	case regMask:
		return uint32(c.mask), nil
	default:
		return 0, nil
	}
}

// Write implements mem.Handler. Writing 1 bits to I_STAT acknowledges
// those interrupts; I_MASK is plain storage.
func (c *Controller) Write(width mem.Width, offset uint32, value uint32) error {
	switch offset &^ 0x3 {
	case regStatus:
		c.Acknowledge(uint16(value))
	case regMask:
		c.SetMask(uint16(value))
	}
	return nil
}
