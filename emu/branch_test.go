package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Branches and jumps", func() {
	Describe("branch delay slot", func() {
		// BEQ $1, $0, +2 ; ADDI $2, $0, 5 ; ADDI $3, $0, 7 ; NOP
		program := []uint32{0x10200002, 0x20020005, 0x20030007, 0}

		It("should always execute the delay slot and skip past the target", func() {
			e := newMachine(program...)
			e.CPU().Regs().WriteReg(1, 0) // branch taken

			e.Step() // beq
			Expect(e.CPU().Regs().ReadReg(2)).To(Equal(uint32(0)))

			e.Step() // delay slot executes despite the taken branch
			Expect(e.CPU().Regs().ReadReg(2)).To(Equal(uint32(5)))
			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0)))

			e.Step() // lands past the skipped instruction
			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0)))
		})

		It("should fall through when not taken", func() {
			e := newMachine(program...)
			e.CPU().Regs().WriteReg(1, 1)

			e.Step()
			e.Step()
			e.Step()

			Expect(e.CPU().Regs().ReadReg(2)).To(Equal(uint32(5)))
			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(7)))
		})
	})

	It("should branch backward", func() {
		// ADDI $2, $2, 1 ; SLTI $3, $2, 3 ; BNE $3, $0, -3 ; NOP
		// Counts $2 up to 3 before falling out of the loop.
		e := newMachine(0x20420001, 0x28430003, 0x1460FFFD, 0)

		for i := 0; i < 12; i++ {
			e.Step()
		}

		Expect(e.CPU().Regs().ReadReg(2)).To(Equal(uint32(3)))
	})

	Describe("jumps", func() {
		It("should jump within the current segment and link", func() {
			// JAL 0x80001010 ; NOP ; at 0x10: ORI $4, $0, 1
			e := newMachine(0x0C000404, 0, 0, 0, 0x34040001)

			e.Step() // jal
			e.Step() // delay slot

			Expect(e.CPU().Regs().ReadReg(31)).To(Equal(uint32(progBase + 8)))

			e.Step()
			Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(1)))
		})

		It("should return through JR", func() {
			// JR $1 ; NOP
			e := newMachine(0x00200008, 0, 0x34040001)
			e.CPU().Regs().WriteReg(1, progBase+8)

			e.Step()
			e.Step()
			e.Step()

			Expect(e.CPU().Regs().ReadReg(4)).To(Equal(uint32(1)))
		})

		It("should link into an arbitrary register with JALR", func() {
			// JALR $2, $1 ; NOP
			e := newMachine(0x00201009, 0)
			e.CPU().Regs().WriteReg(1, progBase+16)

			e.Step()

			Expect(e.CPU().Regs().ReadReg(2)).To(Equal(uint32(progBase + 8)))
			Expect(e.CPU().Regs().NextPC).To(Equal(uint32(progBase + 16)))
		})
	})

	Describe("BcondZ family", func() {
		It("should take BLTZ on negative values only", func() {
			// BLTZ $1, +2 ; ADDI $2, $0, 5 ; ADDI $3, $0, 7 ; NOP
			e := newMachine(0x04200002, 0x20020005, 0x20030007, 0)
			e.CPU().Regs().WriteReg(1, 0xFFFFFFFF)

			e.Step()
			e.Step()
			e.Step()

			Expect(e.CPU().Regs().ReadReg(2)).To(Equal(uint32(5)))
			Expect(e.CPU().Regs().ReadReg(3)).To(Equal(uint32(0)))
		})

		It("should link even when the branch is not taken", func() {
			// BGEZAL $1, +2 with a negative $1
			e := newMachine(0x04310002, 0)
			e.CPU().Regs().WriteReg(1, 0xFFFFFFFF)

			e.Step()

			Expect(e.CPU().Regs().ReadReg(31)).To(Equal(uint32(progBase + 8)))
			Expect(e.CPU().Regs().NextPC).To(Equal(uint32(progBase + 8)))
		})

		It("should link and branch with BLTZAL", func() {
			// BLTZAL $1, +2 ; NOP
			e := newMachine(0x04300002, 0)
			e.CPU().Regs().WriteReg(1, 0xFFFFFFFF)

			e.Step()

			Expect(e.CPU().Regs().ReadReg(31)).To(Equal(uint32(progBase + 8)))
			Expect(e.CPU().Regs().NextPC).To(Equal(uint32(progBase + 12)))
		})
	})
})
