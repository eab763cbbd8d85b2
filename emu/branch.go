package emu

import (
	"github.com/psxcore/psxcore/insts"
)

// jump executes J, JAL, JR and JALR. By the time a jump executes, PC
// already points at its delay slot, so the target segment and the link
// value both derive from PC directly.
func (c *CPU) jump(inst *insts.Instruction) {
	c.branching = true

	switch inst.Op {
	case insts.OpJ:
		c.regs.NextPC = c.regs.PC&0xF0000000 | inst.Target<<2

	case insts.OpJAL:
		c.setReg(RegRA, c.regs.PC+4)
		c.regs.NextPC = c.regs.PC&0xF0000000 | inst.Target<<2

	case insts.OpJR:
		// Target alignment is checked when the word is fetched, not
		// here.
		c.regs.NextPC = c.regs.ReadReg(inst.Rs)

	case insts.OpJALR:
		target := c.regs.ReadReg(inst.Rs)
		c.setReg(inst.Rd, c.regs.PC+4)
		c.regs.NextPC = target
	}
}

// branch executes the conditional branches, including the BcondZ
// family. The linking variants write the return address whether or not
// the branch is taken. The delay-slot marker is set only on the taken
// condition; the instruction after a not-taken branch is an ordinary
// instruction to the exception controller.
func (c *CPU) branch(inst *insts.Instruction) {
	s := int32(c.regs.ReadReg(inst.Rs))

	var taken bool
	switch inst.Op {
	case insts.OpBEQ:
		taken = uint32(s) == c.regs.ReadReg(inst.Rt)
	case insts.OpBNE:
		taken = uint32(s) != c.regs.ReadReg(inst.Rt)
	case insts.OpBLEZ:
		taken = s <= 0
	case insts.OpBGTZ:
		taken = s > 0
	case insts.OpBLTZ:
		taken = s < 0
	case insts.OpBGEZ:
		taken = s >= 0
	case insts.OpBLTZAL:
		c.setReg(RegRA, c.regs.PC+4)
		taken = s < 0
	case insts.OpBGEZAL:
		c.setReg(RegRA, c.regs.PC+4)
		taken = s >= 0
	}

	if taken {
		c.branching = true
		// PC holds the delay-slot address; the displacement is
		// relative to it.
		c.regs.NextPC = c.regs.PC + uint32(inst.BranchOffset())
	}
}
