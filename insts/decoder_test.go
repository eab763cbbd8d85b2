package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/psxcore/psxcore/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("register-format ALU", func() {
		// ADD $3, $1, $2 -> 0x00221820
		It("should decode ADD $3, $1, $2", func() {
			inst := decoder.Decode(0x00221820)

			Expect(inst.Op).To(Equal(insts.OpADD))
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rs).To(Equal(uint8(1)))
			Expect(inst.Rt).To(Equal(uint8(2)))
			Expect(inst.Rd).To(Equal(uint8(3)))
		})

		// SLL $5, $6, 4 -> 0x00062900
		It("should decode SLL with its shift amount", func() {
			inst := decoder.Decode(0x00062900)

			Expect(inst.Op).To(Equal(insts.OpSLL))
			Expect(inst.Rt).To(Equal(uint8(6)))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Shamt).To(Equal(uint8(4)))
		})

		It("should decode the all-zero word as SLL (canonical nop)", func() {
			inst := decoder.Decode(0x00000000)

			Expect(inst.Op).To(Equal(insts.OpSLL))
			Expect(inst.Rd).To(Equal(uint8(0)))
		})

		// SLTU $10, $8, $9 -> 0x0109502B
		It("should decode SLTU", func() {
			inst := decoder.Decode(0x0109502B)

			Expect(inst.Op).To(Equal(insts.OpSLTU))
			Expect(inst.Rs).To(Equal(uint8(8)))
			Expect(inst.Rt).To(Equal(uint8(9)))
			Expect(inst.Rd).To(Equal(uint8(10)))
		})
	})

	Describe("immediate-format ALU", func() {
		// ADDI $2, $0, -1 -> 0x2002FFFF
		It("should sign-extend the ADDI immediate", func() {
			inst := decoder.Decode(0x2002FFFF)

			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Rt).To(Equal(uint8(2)))
			Expect(inst.SignedImm()).To(Equal(int32(-1)))
		})

		// ORI $8, $0, 0x1234 -> 0x34081234
		It("should decode ORI with a raw immediate", func() {
			inst := decoder.Decode(0x34081234)

			Expect(inst.Op).To(Equal(insts.OpORI))
			Expect(inst.Rs).To(Equal(uint8(0)))
			Expect(inst.Rt).To(Equal(uint8(8)))
			Expect(inst.Imm).To(Equal(uint16(0x1234)))
		})

		// LUI $1, 0x8000 -> 0x3C018000
		It("should decode LUI", func() {
			inst := decoder.Decode(0x3C018000)

			Expect(inst.Op).To(Equal(insts.OpLUI))
			Expect(inst.Rt).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(uint16(0x8000)))
		})
	})

	Describe("loads and stores", func() {
		// LW $2, 7($4) -> 0x8C820007
		It("should decode LW and flag it as a delayed load", func() {
			inst := decoder.Decode(0x8C820007)

			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Rs).To(Equal(uint8(4)))
			Expect(inst.Rt).To(Equal(uint8(2)))
			Expect(inst.SignedImm()).To(Equal(int32(7)))
			Expect(inst.IsLoad()).To(BeTrue())
		})

		// SW $2, -4($29) -> 0xAFA2FFFC
		It("should decode SW and not flag it as a load", func() {
			inst := decoder.Decode(0xAFA2FFFC)

			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Rs).To(Equal(uint8(29)))
			Expect(inst.SignedImm()).To(Equal(int32(-4)))
			Expect(inst.IsLoad()).To(BeFalse())
		})

		// LWL $3, 2($5) -> 0x88A30002, LWR $3, 5($5) -> 0x98A30005
		It("should decode the unaligned load pair", func() {
			Expect(decoder.Decode(0x88A30002).Op).To(Equal(insts.OpLWL))
			Expect(decoder.Decode(0x98A30005).Op).To(Equal(insts.OpLWR))
		})

		It("should decode the unaligned store pair", func() {
			// SWL $3, 2($5) -> 0xA8A30002, SWR $3, 5($5) -> 0xB8A30005
			Expect(decoder.Decode(0xA8A30002).Op).To(Equal(insts.OpSWL))
			Expect(decoder.Decode(0xB8A30005).Op).To(Equal(insts.OpSWR))
		})
	})

	Describe("branches and jumps", func() {
		// BEQ $1, $0, +1 -> 0x10200001
		It("should decode BEQ and scale the offset", func() {
			inst := decoder.Decode(0x10200001)

			Expect(inst.Op).To(Equal(insts.OpBEQ))
			Expect(inst.Rs).To(Equal(uint8(1)))
			Expect(inst.Rt).To(Equal(uint8(0)))
			Expect(inst.BranchOffset()).To(Equal(int32(4)))
		})

		// BNE $1, $2, -2 -> 0x1422FFFE
		It("should decode BNE with a backward offset", func() {
			inst := decoder.Decode(0x1422FFFE)

			Expect(inst.Op).To(Equal(insts.OpBNE))
			Expect(inst.BranchOffset()).To(Equal(int32(-8)))
		})

		// J 0xBFC00180 from KSEG1: target field 0x03F00060 -> 0x0BF00060
		It("should decode J with the 26-bit target field", func() {
			inst := decoder.Decode(0x0BF00060)

			Expect(inst.Op).To(Equal(insts.OpJ))
			Expect(inst.Format).To(Equal(insts.FormatJ))
			Expect(inst.Target).To(Equal(uint32(0x03F00060)))
		})

		// JR $31 -> 0x03E00008, JALR $31 -> 0x03E0F809
		It("should decode register jumps", func() {
			jr := decoder.Decode(0x03E00008)
			Expect(jr.Op).To(Equal(insts.OpJR))
			Expect(jr.Rs).To(Equal(uint8(31)))

			jalr := decoder.Decode(0x03E0F809)
			Expect(jalr.Op).To(Equal(insts.OpJALR))
			Expect(jalr.Rd).To(Equal(uint8(31)))
		})
	})

	Describe("BcondZ family", func() {
		// Opcode 0x01 with rs=2, offset 0x10.
		It("should select the variant from the rt field", func() {
			Expect(decoder.Decode(0x04400010).Op).To(Equal(insts.OpBLTZ))   // rt=0x00
			Expect(decoder.Decode(0x04410010).Op).To(Equal(insts.OpBGEZ))   // rt=0x01
			Expect(decoder.Decode(0x04500010).Op).To(Equal(insts.OpBLTZAL)) // rt=0x10
			Expect(decoder.Decode(0x04510010).Op).To(Equal(insts.OpBGEZAL)) // rt=0x11
		})

		It("should alias undocumented rt values onto the plain compares", func() {
			// rt=0x02 behaves as BLTZ, rt=0x03 as BGEZ
			Expect(decoder.Decode(0x04420010).Op).To(Equal(insts.OpBLTZ))
			Expect(decoder.Decode(0x04430010).Op).To(Equal(insts.OpBGEZ))
		})
	})

	Describe("system control", func() {
		// MFC0 $1, $12 -> 0x40016000
		It("should decode MFC0", func() {
			inst := decoder.Decode(0x40016000)

			Expect(inst.Op).To(Equal(insts.OpMFC0))
			Expect(inst.Format).To(Equal(insts.FormatCop))
			Expect(inst.Rt).To(Equal(uint8(1)))
			Expect(inst.Rd).To(Equal(uint8(12)))
		})

		// MTC0 $1, $12 -> 0x40816000
		It("should decode MTC0", func() {
			inst := decoder.Decode(0x40816000)

			Expect(inst.Op).To(Equal(insts.OpMTC0))
			Expect(inst.Rt).To(Equal(uint8(1)))
			Expect(inst.Rd).To(Equal(uint8(12)))
		})

		// RFE -> 0x42000010
		It("should decode RFE", func() {
			Expect(decoder.Decode(0x42000010).Op).To(Equal(insts.OpRFE))
		})

		It("should leave other CO-space functs reserved", func() {
			// TLBWI does not exist on this CPU
			Expect(decoder.Decode(0x42000002).Op).To(Equal(insts.OpReserved))
		})

		It("should decode COP2 words", func() {
			Expect(decoder.Decode(0x4A180001).Op).To(Equal(insts.OpCOP2))
		})
	})

	Describe("traps and odd opcodes", func() {
		It("should decode SYSCALL and BREAK", func() {
			Expect(decoder.Decode(0x0000000C).Op).To(Equal(insts.OpSYSCALL))
			Expect(decoder.Decode(0x0000000D).Op).To(Equal(insts.OpBREAK))
		})

		It("should decode the CACHE opcode", func() {
			// CACHE 0x01, 0($2) -> 0xBC410000
			Expect(decoder.Decode(0xBC410000).Op).To(Equal(insts.OpCACHE))
		})

		It("should decode opcode 0x3F as the hardware no-op", func() {
			Expect(decoder.Decode(0xFC000000).Op).To(Equal(insts.OpNOP3F))
		})

		It("should mark unpopulated opcodes reserved", func() {
			Expect(decoder.Decode(0x7C000000).Op).To(Equal(insts.OpReserved)) // opcode 0x1F
			Expect(decoder.Decode(0xC0000000).Op).To(Equal(insts.OpReserved)) // opcode 0x30
		})

		It("should mark unpopulated SPECIAL functs reserved", func() {
			Expect(decoder.Decode(0x00000001).Op).To(Equal(insts.OpReserved))
			Expect(decoder.Decode(0x0000003F).Op).To(Equal(insts.OpReserved))
		})
	})

	Describe("multiply and divide group", func() {
		It("should decode the HI/LO moves", func() {
			// MFHI $4 -> 0x00002010, MTLO $4 -> 0x00800013
			Expect(decoder.Decode(0x00002010).Op).To(Equal(insts.OpMFHI))
			Expect(decoder.Decode(0x00800013).Op).To(Equal(insts.OpMTLO))
		})

		It("should decode DIV and MULTU", func() {
			// DIV $1, $2 -> 0x0022001A, MULTU $1, $2 -> 0x00220019
			Expect(decoder.Decode(0x0022001A).Op).To(Equal(insts.OpDIV))
			Expect(decoder.Decode(0x00220019).Op).To(Equal(insts.OpMULTU))
		})
	})
})
