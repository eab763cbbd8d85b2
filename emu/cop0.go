package emu

// COP0 register indices.
const (
	Cop0BPC      = 3  // breakpoint PC
	Cop0BDA      = 5  // breakpoint data address
	Cop0TAR      = 6  // target address
	Cop0DCIC     = 7  // debug/cache control
	Cop0BadVaddr = 8  // bad virtual address
	Cop0BDAM     = 9  // data address mask
	Cop0BPCM     = 11 // PC mask
	Cop0SR       = 12 // status register
	Cop0Cause    = 13 // exception cause
	Cop0EPC      = 14 // exception PC
	Cop0PRID     = 15 // processor ID
)

// Reset values.
const (
	resetSR   = 0x10900000
	resetPRID = 0x00000002 // R3000A
)

// SR bits.
const (
	srIEc = 1 << 0  // current interrupt enable
	srIsC = 1 << 16 // isolate cache
	srBEV = 1 << 22 // boot exception vectors
	srCU2 = 1 << 30 // coprocessor 2 usable
)

// CAUSE bits.
const (
	causeCodeMask = 0x7C       // ExcCode, bits [6:2]
	causeIPMask   = 0xFF << 8  // interrupt pending, bits [15:8]
	causeIP2      = 1 << 10    // hardware interrupt line
	causeBD       = 1 << 31    // exception in branch delay slot
)

// ExceptionCause is an R3000A exception code. Architectural exceptions
// are data flowing through the CAUSE register, not Go errors.
type ExceptionCause uint32

// Exception codes.
const (
	ExcInterrupt           ExceptionCause = 0
	ExcAddressErrorLoad    ExceptionCause = 4
	ExcAddressErrorStore   ExceptionCause = 5
	ExcBusErrorInstruction ExceptionCause = 6
	ExcBusErrorData        ExceptionCause = 7
	ExcSyscall             ExceptionCause = 8
	ExcBreakpoint          ExceptionCause = 9
	ExcReservedInstruction ExceptionCause = 10
	ExcCoprocessorUnusable ExceptionCause = 11
	ExcOverflow            ExceptionCause = 12
)

// String returns the exception name for log output.
func (c ExceptionCause) String() string {
	switch c {
	case ExcInterrupt:
		return "interrupt"
	case ExcAddressErrorLoad:
		return "address error (load)"
	case ExcAddressErrorStore:
		return "address error (store)"
	case ExcBusErrorInstruction:
		return "bus error (fetch)"
	case ExcBusErrorData:
		return "bus error (data)"
	case ExcSyscall:
		return "syscall"
	case ExcBreakpoint:
		return "breakpoint"
	case ExcReservedInstruction:
		return "reserved instruction"
	case ExcCoprocessorUnusable:
		return "coprocessor unusable"
	case ExcOverflow:
		return "arithmetic overflow"
	default:
		return "unknown"
	}
}

// COP0 is the system control coprocessor. It holds the status, cause
// and exception-context registers plus the hardware breakpoint set.
type COP0 struct {
	regs [32]uint32
}

// NewCOP0 creates a COP0 with reset values: boot vectors selected,
// interrupts disabled, R3000A processor ID.
func NewCOP0() *COP0 {
	c := &COP0{}
	c.Reset()
	return c
}

// Reset restores the power-on register state.
func (c *COP0) Reset() {
	c.regs = [32]uint32{}
	c.regs[Cop0SR] = resetSR
	c.regs[Cop0PRID] = resetPRID
}

// Read returns the value of a COP0 register.
func (c *COP0) Read(reg uint8) uint32 {
	return c.regs[reg&0x1F]
}

// Write sets a COP0 register. MTC0 stores the value raw; the step
// driver and exception controller own the derived semantics.
func (c *COP0) Write(reg uint8, value uint32) {
	c.regs[reg&0x1F] = value
}

// SR returns the status register.
func (c *COP0) SR() uint32 { return c.regs[Cop0SR] }

// Cause returns the cause register.
func (c *COP0) Cause() uint32 { return c.regs[Cop0Cause] }

// EPC returns the exception PC.
func (c *COP0) EPC() uint32 { return c.regs[Cop0EPC] }

// BadVaddr returns the faulting address of the last address error.
func (c *COP0) BadVaddr() uint32 { return c.regs[Cop0BadVaddr] }

// BootVectors reports whether SR selects the boot (ROM) exception
// vector.
func (c *COP0) BootVectors() bool { return c.regs[Cop0SR]&srBEV != 0 }

// CacheIsolated reports whether SR isolates the cache from memory.
func (c *COP0) CacheIsolated() bool { return c.regs[Cop0SR]&srIsC != 0 }

// Cop2Usable reports whether SR grants access to the geometry
// coprocessor.
func (c *COP0) Cop2Usable() bool { return c.regs[Cop0SR]&srCU2 != 0 }

// InterruptsEnabled reports whether the current interrupt enable bit
// is set.
func (c *COP0) InterruptsEnabled() bool { return c.regs[Cop0SR]&srIEc != 0 }

// SetHardwareInterrupt drives the IP2 line in CAUSE from the interrupt
// controller's pending output.
func (c *COP0) SetHardwareInterrupt(asserted bool) {
	if asserted {
		c.regs[Cop0Cause] |= causeIP2
	} else {
		c.regs[Cop0Cause] &^= causeIP2
	}
}

// InterruptPending reports whether an enabled, unmasked interrupt is
// asserted: SR.IEc gates everything, SR.IM masks CAUSE.IP per line.
func (c *COP0) InterruptPending() bool {
	if !c.InterruptsEnabled() {
		return false
	}
	return c.regs[Cop0SR]&c.regs[Cop0Cause]&causeIPMask != 0
}

// EnterException pushes the mode stack, records the cause and EPC, and
// returns the handler vector. epc is the address of the faulting
// instruction; when it sits in a branch delay slot, EPC backs up to the
// branch and BD is set so the handler can re-execute it.
func (c *COP0) EnterException(cause ExceptionCause, epc uint32, inDelaySlot bool) uint32 {
	// Push the interrupt/kernel mode stack: bits [5:0] hold three
	// (KU, IE) pairs; entry shifts them left, disabling interrupts.
	sr := c.regs[Cop0SR]
	c.regs[Cop0SR] = sr&^0x3F | sr<<2&0x3F

	cr := c.regs[Cop0Cause] &^ (causeCodeMask | causeBD)
	cr |= uint32(cause) << 2
	if inDelaySlot {
		cr |= causeBD
		epc -= 4
	}
	c.regs[Cop0Cause] = cr
	c.regs[Cop0EPC] = epc

	if c.BootVectors() {
		return 0xBFC00180
	}
	return 0x80000080
}

// ReturnFromException pops the mode stack (RFE). The oldest pair in
// bits [5:4] stays in place; the PC restart comes from EPC via the
// handler's jump, not from this instruction.
func (c *COP0) ReturnFromException() {
	sr := c.regs[Cop0SR]
	c.regs[Cop0SR] = sr&^0xF | (sr&0x3F)>>2
}
