package emu

import (
	"log/slog"

	"github.com/psxcore/psxcore/icache"
	"github.com/psxcore/psxcore/insts"
	"github.com/psxcore/psxcore/irq"
	"github.com/psxcore/psxcore/mem"
)

// Reset vector: execution starts in the BIOS through KSEG1.
const (
	ResetPC     = 0xBFC00000
	ResetNextPC = ResetPC + 4
)

// StepResult describes one completed step.
type StepResult struct {
	// PC is the address of the executed instruction, or of the
	// instruction that was about to execute when an interrupt won.
	PC uint32

	// Inst is the executed instruction. Nil when an interrupt was
	// taken instead of executing.
	Inst *insts.Instruction

	// TookException is true if this step vectored into the exception
	// handler, either from the instruction itself or from an
	// interrupt.
	TookException bool

	// Cause is the exception code when TookException is set.
	Cause ExceptionCause

	// Cycles is the number of cycles the step consumed. The
	// interpreter charges a flat cost of one per instruction.
	Cycles uint64
}

// CPU is the R3000A core: register file, system-control coprocessor,
// the two-stage load delay buffer, and the step driver that advances
// the machine one instruction per call.
type CPU struct {
	regs    *RegFile
	cop0    *COP0
	delay   *DelayBuffer
	decoder *insts.Decoder

	bus    *mem.Bus
	icache *icache.Cache
	irq    *irq.Controller

	// currentPC is the address of the instruction being executed,
	// kept for exception EPC bookkeeping.
	currentPC uint32

	// branching marks that the executed instruction was a branch or
	// jump, so the next instruction runs in its delay slot.
	branching bool

	// inDelaySlot marks that the instruction currently executing sits
	// in a branch delay slot.
	inDelaySlot bool

	// exceptionPending is set by handlers that raise an architectural
	// exception mid-execute.
	exceptionPending bool
	exceptionCause   ExceptionCause

	log *slog.Logger
}

// NewCPU creates a CPU attached to a bus. The interrupt controller and
// instruction cache are optional.
func NewCPU(bus *mem.Bus, ic *icache.Cache, intc *irq.Controller, log *slog.Logger) *CPU {
	if log == nil {
		log = slog.Default()
	}
	c := &CPU{
		regs:    &RegFile{},
		cop0:    NewCOP0(),
		delay:   &DelayBuffer{},
		decoder: insts.NewDecoder(),
		bus:     bus,
		icache:  ic,
		irq:     intc,
		log:     log,
	}
	c.Reset()
	return c
}

// Reset puts the core into its power-on state.
func (c *CPU) Reset() {
	*c.regs = RegFile{PC: ResetPC, NextPC: ResetNextPC}
	c.cop0.Reset()
	c.delay.Reset()
	c.branching = false
	c.inDelaySlot = false
	c.exceptionPending = false
	if c.icache != nil {
		c.icache.Reset()
	}
}

// Regs returns the register file.
func (c *CPU) Regs() *RegFile { return c.regs }

// COP0 returns the system-control coprocessor.
func (c *CPU) COP0() *COP0 { return c.cop0 }

// Step executes exactly one instruction, or takes one pending
// interrupt. The machine is in a consistent architectural state on
// every return.
func (c *CPU) Step() StepResult {
	// The interrupt line is sampled between instructions.
	if c.irq != nil {
		c.cop0.SetHardwareInterrupt(c.irq.Pending())
	}
	if c.cop0.InterruptPending() {
		pc := c.regs.PC
		c.vector(ExcInterrupt, pc, c.branching)
		c.branching = false
		return StepResult{PC: pc, TookException: true, Cause: ExcInterrupt, Cycles: 1}
	}

	// Retire the load that left its delay window; shift the armed one
	// into the committing stage.
	c.delay.Advance(c.regs)

	c.currentPC = c.regs.PC
	c.inDelaySlot = c.branching
	c.branching = false

	// Misaligned fetch. Register-indirect jumps land here one step
	// after the jump executes.
	if c.currentPC&0x3 != 0 {
		c.cop0.Write(Cop0BadVaddr, c.currentPC)
		c.vector(ExcAddressErrorLoad, c.currentPC, c.inDelaySlot)
		return StepResult{
			PC:            c.currentPC,
			TookException: true,
			Cause:         ExcAddressErrorLoad,
			Cycles:        1,
		}
	}

	word, ok := c.fetch(c.currentPC)
	if !ok {
		c.vector(ExcBusErrorInstruction, c.currentPC, c.inDelaySlot)
		return StepResult{
			PC:            c.currentPC,
			TookException: true,
			Cause:         ExcBusErrorInstruction,
			Cycles:        1,
		}
	}
	inst := c.decoder.Decode(word)

	// Advance the fetch pipeline before executing, so branch handlers
	// see PC as the delay-slot address.
	c.regs.PC = c.regs.NextPC
	c.regs.NextPC += 4

	c.exceptionPending = false
	c.execute(inst)

	result := StepResult{PC: c.currentPC, Inst: inst, Cycles: 1}
	if c.exceptionPending {
		result.TookException = true
		result.Cause = c.exceptionCause
	}
	return result
}

// vector enters the exception handler.
func (c *CPU) vector(cause ExceptionCause, epc uint32, inDelaySlot bool) {
	handler := c.cop0.EnterException(cause, epc, inDelaySlot)
	c.regs.PC = handler
	c.regs.NextPC = handler + 4
	c.log.Debug("exception taken",
		"cause", cause.String(), "epc", c.cop0.EPC(), "vector", handler)
}

// exception raises an architectural exception from the executing
// instruction. Any redirect the instruction already applied to NextPC
// is discarded by the vectoring.
func (c *CPU) exception(cause ExceptionCause) {
	c.exceptionPending = true
	c.exceptionCause = cause
	c.branching = false
	c.vector(cause, c.currentPC, c.inDelaySlot)
}

// setReg performs a direct register write. It beats a load in its
// delay window targeting the same register.
func (c *CPU) setReg(reg uint8, value uint32) {
	c.regs.WriteReg(reg, value)
	c.delay.CancelIf(reg)
}

// setRegDelayed schedules a register write through the load delay slot.
func (c *CPU) setRegDelayed(reg uint8, value uint32) {
	c.delay.Arm(reg, value)
}

// fetch reads an instruction word, through the cache for cacheable
// segments. A fetch from unmapped space or through a faulting
// peripheral reports !ok; the caller raises the instruction bus error.
func (c *CPU) fetch(vaddr uint32) (uint32, bool) {
	if region, _ := mem.Resolve(vaddr); region == mem.RegionUnmapped {
		c.log.Warn("fetch from unmapped address", "pc", vaddr)
		return 0, false
	}

	if c.icache == nil || !cacheableSegment(vaddr) {
		word, err := c.bus.Read32(vaddr)
		return word, err == nil
	}

	paddr := mem.Translate(vaddr)
	if word, hit := c.icache.Fetch(paddr); hit {
		return word, true
	}
	word, err := c.bus.Read32(vaddr)
	if err != nil {
		return 0, false
	}
	c.icache.Fill(paddr, word)
	return word, true
}

// cacheableSegment reports whether fetches from vaddr go through the
// instruction cache. KSEG1 is the uncached mirror.
func cacheableSegment(vaddr uint32) bool {
	return vaddr>>29 != 0x5
}
