package emu

import (
	"github.com/psxcore/psxcore/insts"
)

// execute dispatches one decoded instruction. The switch is exhaustive
// over the Op enumeration; anything the decoder could not place traps
// as a reserved instruction.
func (c *CPU) execute(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpSLL, insts.OpSRL, insts.OpSRA,
		insts.OpSLLV, insts.OpSRLV, insts.OpSRAV:
		c.shift(inst)

	case insts.OpADD, insts.OpADDU, insts.OpSUB, insts.OpSUBU,
		insts.OpAND, insts.OpOR, insts.OpXOR, insts.OpNOR,
		insts.OpSLT, insts.OpSLTU:
		c.aluRegister(inst)

	case insts.OpADDI, insts.OpADDIU, insts.OpSLTI, insts.OpSLTIU,
		insts.OpANDI, insts.OpORI, insts.OpXORI, insts.OpLUI:
		c.aluImmediate(inst)

	case insts.OpMULT, insts.OpMULTU, insts.OpDIV, insts.OpDIVU,
		insts.OpMFHI, insts.OpMTHI, insts.OpMFLO, insts.OpMTLO:
		c.mulDiv(inst)

	case insts.OpJ, insts.OpJAL, insts.OpJR, insts.OpJALR:
		c.jump(inst)

	case insts.OpBEQ, insts.OpBNE, insts.OpBLEZ, insts.OpBGTZ,
		insts.OpBLTZ, insts.OpBGEZ, insts.OpBLTZAL, insts.OpBGEZAL:
		c.branch(inst)

	case insts.OpLB, insts.OpLBU, insts.OpLH, insts.OpLHU, insts.OpLW:
		c.load(inst)

	case insts.OpLWL, insts.OpLWR:
		c.loadUnaligned(inst)

	case insts.OpSB, insts.OpSH, insts.OpSW:
		c.store(inst)

	case insts.OpSWL, insts.OpSWR:
		c.storeUnaligned(inst)

	case insts.OpMFC0, insts.OpMTC0, insts.OpRFE:
		c.systemControl(inst)

	case insts.OpCOP2:
		c.cop2(inst)

	case insts.OpSYSCALL:
		c.exception(ExcSyscall)

	case insts.OpBREAK:
		c.exception(ExcBreakpoint)

	case insts.OpCACHE:
		// Cache maintenance has no functional effect here; coherency
		// is kept by the RAM write observer.
		c.log.Debug("cache op ignored", "pc", c.currentPC, "word", inst.Word)

	case insts.OpNOP3F:
		// Opcode 0x3F reads back as a no-op on the real decode array.

	default:
		c.log.Warn("reserved instruction",
			"pc", c.currentPC, "word", inst.Word)
		c.exception(ExcReservedInstruction)
	}
}
