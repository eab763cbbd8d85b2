// Package insts provides MIPS R3000A instruction definitions and decoding.
//
// This package implements decoding of MIPS I machine code into structured
// instruction representations. It covers the full R3000A integer set as
// shipped in the PlayStation CPU:
//   - ALU register and immediate forms (ADD, ADDU, SUB, AND, OR, SLT, ...)
//   - Shifts (SLL, SRL, SRA and their variable forms)
//   - Multiply/divide and the HI/LO moves
//   - Branches, jumps and the BcondZ family
//   - Loads and stores, including the unaligned LWL/LWR/SWL/SWR quartet
//   - COP0 system-control ops (MFC0, MTC0, RFE) and the COP2 gate
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x8C820007) // LW $2, 7($4)
//	fmt.Printf("Op: %v, Rt: %d, Rs: %d, Imm: %d\n", inst.Op, inst.Rt, inst.Rs, inst.SignedImm())
package insts

// Op identifies a decoded operation. The set is closed: every encoding
// maps either to one of these or to OpReserved.
type Op uint16

// R3000A operations.
const (
	OpReserved Op = iota // encoding not populated on this CPU

	// Shifts.
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV

	// Register jumps and traps.
	OpJR
	OpJALR
	OpSYSCALL
	OpBREAK

	// HI/LO moves and multiply/divide.
	OpMFHI
	OpMTHI
	OpMFLO
	OpMTLO
	OpMULT
	OpMULTU
	OpDIV
	OpDIVU

	// Three-register ALU.
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU

	// BcondZ family (opcode 0x01, selected by the rt field).
	OpBLTZ
	OpBGEZ
	OpBLTZAL
	OpBGEZAL

	// Jumps and branches.
	OpJ
	OpJAL
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ

	// Immediate ALU.
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI

	// System control (COP0).
	OpMFC0
	OpMTC0
	OpRFE

	// Geometry coprocessor gate. The GTE itself is not modeled; the
	// decoder still classifies its encodings so the core can apply the
	// SR.CU2 usability check.
	OpCOP2

	// Loads.
	OpLB
	OpLH
	OpLWL
	OpLW
	OpLBU
	OpLHU
	OpLWR

	// Stores.
	OpSB
	OpSH
	OpSWL
	OpSW
	OpSWR

	// Cache-maintenance opcode, executed as a no-op.
	OpCACHE

	// Opcode 0x3F reads as a no-op on retail hardware (unpopulated
	// decode line), and the BIOS relies on that.
	OpNOP3F
)

// Format identifies the MIPS encoding class of an instruction.
type Format uint8

// MIPS instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // register: op | rs | rt | rd | shamt | funct
	FormatI              // immediate: op | rs | rt | imm16
	FormatJ              // jump: op | target26
	FormatCop            // coprocessor: op | sel | rt | rd | ... | funct
)

// Instruction is a decoded MIPS instruction word.
type Instruction struct {
	Word   uint32 // raw encoding
	Op     Op
	Format Format

	Rs    uint8 // bits [25:21]
	Rt    uint8 // bits [20:16]
	Rd    uint8 // bits [15:11]
	Shamt uint8 // bits [10:6]

	Imm    uint16 // bits [15:0], interpretation depends on Op
	Target uint32 // bits [25:0], jump target field
}

// SignedImm returns the 16-bit immediate sign-extended to 32 bits.
func (i Instruction) SignedImm() int32 {
	return int32(int16(i.Imm))
}

// BranchOffset returns the branch displacement in bytes, relative to the
// delay-slot address.
func (i Instruction) BranchOffset() int32 {
	return i.SignedImm() << 2
}

// IsLoad reports whether the instruction writes its target register
// through the load delay slot.
func (i Instruction) IsLoad() bool {
	switch i.Op {
	case OpLB, OpLH, OpLWL, OpLW, OpLBU, OpLHU, OpLWR:
		return true
	}
	return false
}
