package insts

import "fmt"

// regNames maps register numbers to the conventional MIPS ABI names.
var regNames = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// mnemonics for every Op, indexed by the enum value.
var mnemonics = map[Op]string{
	OpSLL: "sll", OpSRL: "srl", OpSRA: "sra",
	OpSLLV: "sllv", OpSRLV: "srlv", OpSRAV: "srav",
	OpJR: "jr", OpJALR: "jalr",
	OpSYSCALL: "syscall", OpBREAK: "break",
	OpMFHI: "mfhi", OpMTHI: "mthi", OpMFLO: "mflo", OpMTLO: "mtlo",
	OpMULT: "mult", OpMULTU: "multu", OpDIV: "div", OpDIVU: "divu",
	OpADD: "add", OpADDU: "addu", OpSUB: "sub", OpSUBU: "subu",
	OpAND: "and", OpOR: "or", OpXOR: "xor", OpNOR: "nor",
	OpSLT: "slt", OpSLTU: "sltu",
	OpBLTZ: "bltz", OpBGEZ: "bgez", OpBLTZAL: "bltzal", OpBGEZAL: "bgezal",
	OpJ: "j", OpJAL: "jal",
	OpBEQ: "beq", OpBNE: "bne", OpBLEZ: "blez", OpBGTZ: "bgtz",
	OpADDI: "addi", OpADDIU: "addiu", OpSLTI: "slti", OpSLTIU: "sltiu",
	OpANDI: "andi", OpORI: "ori", OpXORI: "xori", OpLUI: "lui",
	OpMFC0: "mfc0", OpMTC0: "mtc0", OpRFE: "rfe",
	OpCOP2: "cop2",
	OpLB:   "lb", OpLH: "lh", OpLWL: "lwl", OpLW: "lw",
	OpLBU: "lbu", OpLHU: "lhu", OpLWR: "lwr",
	OpSB: "sb", OpSH: "sh", OpSWL: "swl", OpSW: "sw", OpSWR: "swr",
	OpCACHE: "cache", OpNOP3F: "nop",
}

// String renders the operation mnemonic.
func (op Op) String() string {
	if m, ok := mnemonics[op]; ok {
		return m
	}
	return "reserved"
}

// Disassemble renders the instruction in conventional MIPS assembly.
// pc is the address of the instruction, used to resolve branch targets.
func (i Instruction) Disassemble(pc uint32) string {
	rs, rt, rd := regNames[i.Rs], regNames[i.Rt], regNames[i.Rd]
	branchTarget := pc + 4 + uint32(i.BranchOffset())

	switch i.Op {
	case OpSLL:
		if i.Word == 0 {
			return "nop"
		}
		return fmt.Sprintf("sll %s, %s, %d", rd, rt, i.Shamt)
	case OpSRL, OpSRA:
		return fmt.Sprintf("%s %s, %s, %d", i.Op, rd, rt, i.Shamt)
	case OpSLLV, OpSRLV, OpSRAV:
		return fmt.Sprintf("%s %s, %s, %s", i.Op, rd, rt, rs)
	case OpJR:
		return fmt.Sprintf("jr %s", rs)
	case OpJALR:
		return fmt.Sprintf("jalr %s, %s", rd, rs)
	case OpSYSCALL, OpBREAK, OpRFE, OpNOP3F:
		return i.Op.String()
	case OpMFHI, OpMFLO:
		return fmt.Sprintf("%s %s", i.Op, rd)
	case OpMTHI, OpMTLO:
		return fmt.Sprintf("%s %s", i.Op, rs)
	case OpMULT, OpMULTU, OpDIV, OpDIVU:
		return fmt.Sprintf("%s %s, %s", i.Op, rs, rt)
	case OpADD, OpADDU, OpSUB, OpSUBU, OpAND, OpOR, OpXOR, OpNOR, OpSLT, OpSLTU:
		return fmt.Sprintf("%s %s, %s, %s", i.Op, rd, rs, rt)
	case OpBLTZ, OpBGEZ, OpBLTZAL, OpBGEZAL, OpBLEZ, OpBGTZ:
		return fmt.Sprintf("%s %s, 0x%08X", i.Op, rs, branchTarget)
	case OpBEQ, OpBNE:
		return fmt.Sprintf("%s %s, %s, 0x%08X", i.Op, rs, rt, branchTarget)
	case OpJ, OpJAL:
		target := (pc+4)&0xF0000000 | i.Target<<2
		return fmt.Sprintf("%s 0x%08X", i.Op, target)
	case OpADDI, OpADDIU, OpSLTI, OpSLTIU:
		return fmt.Sprintf("%s %s, %s, %d", i.Op, rt, rs, i.SignedImm())
	case OpANDI, OpORI, OpXORI:
		return fmt.Sprintf("%s %s, %s, 0x%04X", i.Op, rt, rs, i.Imm)
	case OpLUI:
		return fmt.Sprintf("lui %s, 0x%04X", rt, i.Imm)
	case OpMFC0, OpMTC0:
		return fmt.Sprintf("%s %s, $%d", i.Op, rt, i.Rd)
	case OpCOP2:
		return fmt.Sprintf("cop2 0x%07X", i.Word&0x01FFFFFF)
	case OpLB, OpLH, OpLWL, OpLW, OpLBU, OpLHU, OpLWR,
		OpSB, OpSH, OpSWL, OpSW, OpSWR:
		return fmt.Sprintf("%s %s, %d(%s)", i.Op, rt, i.SignedImm(), rs)
	case OpCACHE:
		return fmt.Sprintf("cache 0x%02X, %d(%s)", i.Rt, i.SignedImm(), rs)
	default:
		return fmt.Sprintf("reserved 0x%08X", i.Word)
	}
}
