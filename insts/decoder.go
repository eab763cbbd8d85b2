package insts

// Primary opcode values (bits [31:26]).
const (
	opcodeSpecial = 0x00
	opcodeBcondZ  = 0x01
	opcodeJ       = 0x02
	opcodeJAL     = 0x03
	opcodeBEQ     = 0x04
	opcodeBNE     = 0x05
	opcodeBLEZ    = 0x06
	opcodeBGTZ    = 0x07
	opcodeADDI    = 0x08
	opcodeADDIU   = 0x09
	opcodeSLTI    = 0x0A
	opcodeSLTIU   = 0x0B
	opcodeANDI    = 0x0C
	opcodeORI     = 0x0D
	opcodeXORI    = 0x0E
	opcodeLUI     = 0x0F
	opcodeCOP0    = 0x10
	opcodeCOP2    = 0x12
	opcodeLB      = 0x20
	opcodeLH      = 0x21
	opcodeLWL     = 0x22
	opcodeLW      = 0x23
	opcodeLBU     = 0x24
	opcodeLHU     = 0x25
	opcodeLWR     = 0x26
	opcodeSB      = 0x28
	opcodeSH      = 0x29
	opcodeSWL     = 0x2A
	opcodeSW      = 0x2B
	opcodeSWR     = 0x2E
	opcodeCACHE   = 0x2F
	opcodeNop3F   = 0x3F
)

// COP0 selector values (bits [25:21] of a COP0 instruction).
const (
	copSelMFC = 0x00
	copSelMTC = 0x04
	copSelCO  = 0x10
)

// functRFE is the funct field of the RFE instruction.
const functRFE = 0x10

// Decoder decodes MIPS R3000A machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new R3000A instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word. Every word decodes to an
// Instruction; encodings the CPU does not populate come back as OpReserved
// and trap at execute time.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Word:   word,
		Op:     OpReserved,
		Rs:     uint8((word >> 21) & 0x1F),
		Rt:     uint8((word >> 16) & 0x1F),
		Rd:     uint8((word >> 11) & 0x1F),
		Shamt:  uint8((word >> 6) & 0x1F),
		Imm:    uint16(word & 0xFFFF),
		Target: word & 0x03FFFFFF,
	}

	opcode := word >> 26

	switch opcode {
	case opcodeSpecial:
		d.decodeSpecial(word, inst)
	case opcodeBcondZ:
		d.decodeBcondZ(inst)
	case opcodeJ:
		inst.Op, inst.Format = OpJ, FormatJ
	case opcodeJAL:
		inst.Op, inst.Format = OpJAL, FormatJ
	case opcodeBEQ:
		inst.Op, inst.Format = OpBEQ, FormatI
	case opcodeBNE:
		inst.Op, inst.Format = OpBNE, FormatI
	case opcodeBLEZ:
		inst.Op, inst.Format = OpBLEZ, FormatI
	case opcodeBGTZ:
		inst.Op, inst.Format = OpBGTZ, FormatI
	case opcodeADDI:
		inst.Op, inst.Format = OpADDI, FormatI
	case opcodeADDIU:
		inst.Op, inst.Format = OpADDIU, FormatI
	case opcodeSLTI:
		inst.Op, inst.Format = OpSLTI, FormatI
	case opcodeSLTIU:
		inst.Op, inst.Format = OpSLTIU, FormatI
	case opcodeANDI:
		inst.Op, inst.Format = OpANDI, FormatI
	case opcodeORI:
		inst.Op, inst.Format = OpORI, FormatI
	case opcodeXORI:
		inst.Op, inst.Format = OpXORI, FormatI
	case opcodeLUI:
		inst.Op, inst.Format = OpLUI, FormatI
	case opcodeCOP0:
		d.decodeCop0(word, inst)
	case opcodeCOP2:
		inst.Op, inst.Format = OpCOP2, FormatCop
	case opcodeLB:
		inst.Op, inst.Format = OpLB, FormatI
	case opcodeLH:
		inst.Op, inst.Format = OpLH, FormatI
	case opcodeLWL:
		inst.Op, inst.Format = OpLWL, FormatI
	case opcodeLW:
		inst.Op, inst.Format = OpLW, FormatI
	case opcodeLBU:
		inst.Op, inst.Format = OpLBU, FormatI
	case opcodeLHU:
		inst.Op, inst.Format = OpLHU, FormatI
	case opcodeLWR:
		inst.Op, inst.Format = OpLWR, FormatI
	case opcodeSB:
		inst.Op, inst.Format = OpSB, FormatI
	case opcodeSH:
		inst.Op, inst.Format = OpSH, FormatI
	case opcodeSWL:
		inst.Op, inst.Format = OpSWL, FormatI
	case opcodeSW:
		inst.Op, inst.Format = OpSW, FormatI
	case opcodeSWR:
		inst.Op, inst.Format = OpSWR, FormatI
	case opcodeCACHE:
		inst.Op, inst.Format = OpCACHE, FormatI
	case opcodeNop3F:
		inst.Op, inst.Format = OpNOP3F, FormatI
	}

	return inst
}

// decodeSpecial decodes opcode 0x00, selected by the funct field.
func (d *Decoder) decodeSpecial(word uint32, inst *Instruction) {
	inst.Format = FormatR

	funct := word & 0x3F

	switch funct {
	case 0x00:
		inst.Op = OpSLL
	case 0x02:
		inst.Op = OpSRL
	case 0x03:
		inst.Op = OpSRA
	case 0x04:
		inst.Op = OpSLLV
	case 0x06:
		inst.Op = OpSRLV
	case 0x07:
		inst.Op = OpSRAV
	case 0x08:
		inst.Op = OpJR
	case 0x09:
		inst.Op = OpJALR
	case 0x0C:
		inst.Op = OpSYSCALL
	case 0x0D:
		inst.Op = OpBREAK
	case 0x10:
		inst.Op = OpMFHI
	case 0x11:
		inst.Op = OpMTHI
	case 0x12:
		inst.Op = OpMFLO
	case 0x13:
		inst.Op = OpMTLO
	case 0x18:
		inst.Op = OpMULT
	case 0x19:
		inst.Op = OpMULTU
	case 0x1A:
		inst.Op = OpDIV
	case 0x1B:
		inst.Op = OpDIVU
	case 0x20:
		inst.Op = OpADD
	case 0x21:
		inst.Op = OpADDU
	case 0x22:
		inst.Op = OpSUB
	case 0x23:
		inst.Op = OpSUBU
	case 0x24:
		inst.Op = OpAND
	case 0x25:
		inst.Op = OpOR
	case 0x26:
		inst.Op = OpXOR
	case 0x27:
		inst.Op = OpNOR
	case 0x2A:
		inst.Op = OpSLT
	case 0x2B:
		inst.Op = OpSLTU
	default:
		inst.Op = OpReserved
	}
}

// decodeBcondZ decodes opcode 0x01. The rt field selects the variant:
// bit 0 picks BGEZ over BLTZ, bit 4 adds the link. Other rt values alias
// onto these four; there is no reserved trap in this opcode group.
func (d *Decoder) decodeBcondZ(inst *Instruction) {
	inst.Format = FormatI

	ge := inst.Rt&0x01 != 0
	link := inst.Rt&0x10 != 0

	switch {
	case ge && link:
		inst.Op = OpBGEZAL
	case ge:
		inst.Op = OpBGEZ
	case link:
		inst.Op = OpBLTZAL
	default:
		inst.Op = OpBLTZ
	}
}

// decodeCop0 decodes opcode 0x10, selected by bits [25:21].
func (d *Decoder) decodeCop0(word uint32, inst *Instruction) {
	inst.Format = FormatCop

	switch (word >> 21) & 0x1F {
	case copSelMFC:
		inst.Op = OpMFC0
	case copSelMTC:
		inst.Op = OpMTC0
	case copSelCO:
		if word&0x3F == functRFE {
			inst.Op = OpRFE
		}
	}
}
