package emu

import (
	"github.com/psxcore/psxcore/insts"
)

// mulDiv executes the multiply/divide group and the HI/LO moves. The
// results land in HI/LO immediately; multiply/divide busy timing is
// not modeled.
func (c *CPU) mulDiv(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpMULT:
		product := int64(int32(c.regs.ReadReg(inst.Rs))) *
			int64(int32(c.regs.ReadReg(inst.Rt)))
		c.regs.HI = uint32(uint64(product) >> 32)
		c.regs.LO = uint32(uint64(product))

	case insts.OpMULTU:
		product := uint64(c.regs.ReadReg(inst.Rs)) *
			uint64(c.regs.ReadReg(inst.Rt))
		c.regs.HI = uint32(product >> 32)
		c.regs.LO = uint32(product)

	case insts.OpDIV:
		c.divSigned(int32(c.regs.ReadReg(inst.Rs)), int32(c.regs.ReadReg(inst.Rt)))

	case insts.OpDIVU:
		n := c.regs.ReadReg(inst.Rs)
		d := c.regs.ReadReg(inst.Rt)
		if d == 0 {
			// Division by zero does not trap; the quotient saturates
			// and HI keeps the numerator.
			c.regs.HI = n
			c.regs.LO = 0xFFFFFFFF
			return
		}
		c.regs.HI = n % d
		c.regs.LO = n / d

	case insts.OpMFHI:
		c.setReg(inst.Rd, c.regs.HI)
	case insts.OpMFLO:
		c.setReg(inst.Rd, c.regs.LO)
	case insts.OpMTHI:
		c.regs.HI = c.regs.ReadReg(inst.Rs)
	case insts.OpMTLO:
		c.regs.LO = c.regs.ReadReg(inst.Rs)
	}
}

// divSigned implements DIV, including both defined corner cases.
func (c *CPU) divSigned(n, d int32) {
	switch {
	case d == 0:
		c.regs.HI = uint32(n)
		if n >= 0 {
			c.regs.LO = 0xFFFFFFFF
		} else {
			c.regs.LO = 1
		}
	case uint32(n) == 0x80000000 && d == -1:
		// The one quotient that does not fit in 32 bits.
		c.regs.HI = 0
		c.regs.LO = 0x80000000
	default:
		c.regs.HI = uint32(n % d)
		c.regs.LO = uint32(n / d)
	}
}
