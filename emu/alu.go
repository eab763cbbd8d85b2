package emu

import (
	"github.com/psxcore/psxcore/insts"
)

// shift executes the shift group. Fixed shifts take the amount from
// the shamt field, variable shifts from the low five bits of rs.
func (c *CPU) shift(inst *insts.Instruction) {
	value := c.regs.ReadReg(inst.Rt)

	var amount uint32
	switch inst.Op {
	case insts.OpSLL, insts.OpSRL, insts.OpSRA:
		amount = uint32(inst.Shamt)
	default:
		amount = c.regs.ReadReg(inst.Rs) & 0x1F
	}

	var result uint32
	switch inst.Op {
	case insts.OpSLL, insts.OpSLLV:
		result = value << amount
	case insts.OpSRL, insts.OpSRLV:
		result = value >> amount
	default: // SRA, SRAV
		result = uint32(int32(value) >> amount)
	}

	c.setReg(inst.Rd, result)
}

// aluRegister executes the three-register ALU group. ADD and SUB trap
// on signed overflow and leave the destination unmodified.
func (c *CPU) aluRegister(inst *insts.Instruction) {
	a := c.regs.ReadReg(inst.Rs)
	b := c.regs.ReadReg(inst.Rt)

	var result uint32
	switch inst.Op {
	case insts.OpADD:
		result = a + b
		if addOverflows(a, b, result) {
			c.exception(ExcOverflow)
			return
		}
	case insts.OpADDU:
		result = a + b
	case insts.OpSUB:
		result = a - b
		if subOverflows(a, b, result) {
			c.exception(ExcOverflow)
			return
		}
	case insts.OpSUBU:
		result = a - b
	case insts.OpAND:
		result = a & b
	case insts.OpOR:
		result = a | b
	case insts.OpXOR:
		result = a ^ b
	case insts.OpNOR:
		result = ^(a | b)
	case insts.OpSLT:
		if int32(a) < int32(b) {
			result = 1
		}
	case insts.OpSLTU:
		if a < b {
			result = 1
		}
	}

	c.setReg(inst.Rd, result)
}

// aluImmediate executes the immediate ALU group. ADDI traps on signed
// overflow; the logical ops zero-extend their immediate, the
// arithmetic and compare ops sign-extend it.
func (c *CPU) aluImmediate(inst *insts.Instruction) {
	a := c.regs.ReadReg(inst.Rs)
	signed := uint32(inst.SignedImm())
	raw := uint32(inst.Imm)

	var result uint32
	switch inst.Op {
	case insts.OpADDI:
		result = a + signed
		if addOverflows(a, signed, result) {
			c.exception(ExcOverflow)
			return
		}
	case insts.OpADDIU:
		result = a + signed
	case insts.OpSLTI:
		if int32(a) < inst.SignedImm() {
			result = 1
		}
	case insts.OpSLTIU:
		if a < signed {
			result = 1
		}
	case insts.OpANDI:
		result = a & raw
	case insts.OpORI:
		result = a | raw
	case insts.OpXORI:
		result = a ^ raw
	case insts.OpLUI:
		result = raw << 16
	}

	c.setReg(inst.Rt, result)
}

// addOverflows reports signed overflow of a+b.
func addOverflows(a, b, sum uint32) bool {
	return (a^b)&0x80000000 == 0 && (a^sum)&0x80000000 != 0
}

// subOverflows reports signed overflow of a-b.
func subOverflows(a, b, diff uint32) bool {
	return (a^b)&0x80000000 != 0 && (a^diff)&0x80000000 != 0
}
