package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/psxcore/psxcore/emu"
)

var _ = Describe("ALU", func() {
	It("should add and keep register 0 at zero", func() {
		// ORI $1, $0, 0x1234 ; ADD $0, $1, $1
		e := newMachine(0x34011234, 0x00210020)

		e.Step()
		e.Step()

		Expect(e.CPU().Regs().ReadReg(1)).To(Equal(uint32(0x1234)))
		Expect(e.CPU().Regs().ReadReg(0)).To(Equal(uint32(0)))
	})

	It("should build constants with LUI and ORI", func() {
		// LUI $1, 0xDEAD ; ORI $1, $1, 0xBEEF
		e := newMachine(0x3C01DEAD, 0x3421BEEF)

		e.Step()
		e.Step()

		Expect(e.CPU().Regs().ReadReg(1)).To(Equal(uint32(0xDEADBEEF)))
	})

	It("should sign-extend ADDIU immediates without trapping", func() {
		// ADDIU $1, $0, -1
		e := newMachine(0x2401FFFF)

		e.Step()

		Expect(e.CPU().Regs().ReadReg(1)).To(Equal(uint32(0xFFFFFFFF)))
	})

	Describe("checked add overflow", func() {
		It("should trap, leave the destination alone and record the add's address", func() {
			// ADD $3, $1, $2
			e := newMachine(0x00221820)
			e.CPU().Regs().WriteReg(1, 0x7FFFFFFF)
			e.CPU().Regs().WriteReg(2, 1)
			e.CPU().Regs().WriteReg(3, 0x1111)

			result := e.Step()

			Expect(result.TookException).To(BeTrue())
			Expect(result.Cause).To(Equal(emu.ExcOverflow))
			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0x1111)))
			Expect(e.CPU().COP0().EPC()).To(Equal(uint32(progBase)))
			Expect(e.CPU().COP0().Cause() >> 2 & 0x1F).To(Equal(uint32(emu.ExcOverflow)))
		})

		It("should trap ADDI the same way", func() {
			// ADDI $3, $1, 1
			e := newMachine(0x20230001)
			e.CPU().Regs().WriteReg(1, 0x7FFFFFFF)

			result := e.Step()

			Expect(result.Cause).To(Equal(emu.ExcOverflow))
			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0)))
		})
	})

	Describe("shifts", func() {
		It("should shift by the immediate amount", func() {
			// ORI $1, $0, 0x8000 ; SLL $2, $1, 16 ; SRA $3, $2, 31
			e := newMachine(0x34018000, 0x00011400, 0x00021FC3)

			e.Step()
			e.Step()
			e.Step()

			Expect(e.CPU().Regs().ReadReg(2)).To(Equal(uint32(0x80000000)))
			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0xFFFFFFFF)))
		})

		It("should take variable shift amounts from the low five bits", func() {
			// SLLV $3, $2, $1
			e := newMachine(0x00221804)
			e.CPU().Regs().WriteReg(1, 33) // only 1 counts
			e.CPU().Regs().WriteReg(2, 1)

			e.Step()

			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(2)))
		})
	})

	Describe("comparisons", func() {
		It("should distinguish signed and unsigned", func() {
			// SLT $3, $1, $2 ; SLTU $4, $1, $2
			e := newMachine(0x0022182A, 0x0022202B)
			e.CPU().Regs().WriteReg(1, 0xFFFFFFFF) // -1 signed, huge unsigned
			e.CPU().Regs().WriteReg(2, 1)

			e.Step()
			e.Step()

			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(1)))
			Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(0)))
		})
	})
})

var _ = Describe("Multiply and divide", func() {
	// DIV $1, $2 then MFLO $3 / MFHI $4
	program := []uint32{0x0022001A, 0x00001812, 0x00002010}

	divide := func(n, d uint32) *emu.Emulator {
		e := newMachine(program...)
		e.CPU().Regs().WriteReg(1, n)
		e.CPU().Regs().WriteReg(2, d)
		e.Step()
		e.Step()
		e.Step()
		return e
	}

	It("should divide signed values", func() {
		e := divide(7, 2)
		Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(3)))
		Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(1)))
	})

	It("should define division by zero for non-negative numerators", func() {
		e := divide(7, 0)
		Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0xFFFFFFFF)))
		Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(7)))
	})

	It("should define division by zero for negative numerators", func() {
		e := divide(0xFFFFFFF9, 0) // -7
		Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(1)))
		Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(0xFFFFFFF9)))
	})

	It("should pin the one overflowing quotient", func() {
		e := divide(0x80000000, 0xFFFFFFFF)
		Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0x80000000)))
		Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(0)))
	})

	It("should split 64-bit products across HI and LO", func() {
		// MULT $1, $2 ; MFHI $3 ; MFLO $4
		e := newMachine(0x00220018, 0x00001810, 0x00002012)
		e.CPU().Regs().WriteReg(1, 0xFFFFFFFF) // -1
		e.CPU().Regs().WriteReg(2, 3)

		e.Step()
		e.Step()
		e.Step()

		// -3 as a 64-bit value
		Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0xFFFFFFFF)))
		Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(0xFFFFFFFD)))
	})

	It("should move values into HI and LO", func() {
		// MTHI $1 ; MTLO $2 ; MFHI $3 ; MFLO $4
		e := newMachine(0x00200011, 0x00400013, 0x00001810, 0x00002012)
		e.CPU().Regs().WriteReg(1, 0xAAAA)
		e.CPU().Regs().WriteReg(2, 0xBBBB)

		for i := 0; i < 4; i++ {
			e.Step()
		}

		Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0xAAAA)))
		Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(0xBBBB)))
	})
})
