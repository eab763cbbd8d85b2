// Package emu provides functional R3000A emulation.
package emu

// RegFile represents the R3000A register file: 32 general-purpose
// registers, the HI/LO multiply-divide accumulators, and the PC/NextPC
// pair that models the pipelined fetch.
type RegFile struct {
	// R holds general-purpose registers r0-r31.
	// R[0] is hardwired to zero.
	R [32]uint32

	// HI and LO hold multiply/divide results.
	HI uint32
	LO uint32

	// PC is the address of the next instruction to execute.
	PC uint32

	// NextPC is the address after that. Branches redirect NextPC,
	// which is what gives the delay slot its one-instruction window.
	NextPC uint32
}

// RegRA is the link register used by JAL, JALR and the linking BcondZ
// variants.
const RegRA = 31

// ReadReg reads a register value. Register 0 always returns 0.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg == 0 {
		return 0
	}
	return r.R[reg]
}

// WriteReg writes a value to a register. Writes to register 0 are
// ignored.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg == 0 {
		return
	}
	r.R[reg] = value
}
