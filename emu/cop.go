package emu

import (
	"github.com/psxcore/psxcore/insts"
)

// systemControl executes the COP0 moves and RFE. MFC0 goes through the
// load delay slot, like a memory load; MTC0 takes effect immediately.
func (c *CPU) systemControl(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpMFC0:
		c.setRegDelayed(inst.Rt, c.cop0.Read(inst.Rd))

	case insts.OpMTC0:
		value := c.regs.ReadReg(inst.Rt)
		if inst.Rd != Cop0SR && inst.Rd != Cop0Cause && value != 0 {
			switch inst.Rd {
			case Cop0BPC, Cop0BDA, Cop0TAR, Cop0DCIC, Cop0BDAM, Cop0BPCM:
				// Hardware breakpoint registers, stored but inert.
			default:
				c.log.Debug("mtc0 to unhandled register",
					"reg", inst.Rd, "value", value)
			}
		}
		c.cop0.Write(inst.Rd, value)

	case insts.OpRFE:
		c.cop0.ReturnFromException()
	}
}

// cop2 gates geometry-coprocessor encodings. With CU2 clear they trap;
// with it set they fall through as no-ops, since GTE arithmetic is not
// modeled.
func (c *CPU) cop2(inst *insts.Instruction) {
	if !c.cop0.Cop2Usable() {
		c.exception(ExcCoprocessorUnusable)
		return
	}
	c.log.Debug("cop2 op ignored", "pc", c.currentPC, "word", inst.Word)
}
