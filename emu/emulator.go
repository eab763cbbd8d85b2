package emu

import (
	"fmt"
	"log/slog"

	"github.com/psxcore/psxcore/icache"
	"github.com/psxcore/psxcore/irq"
	"github.com/psxcore/psxcore/loader"
	"github.com/psxcore/psxcore/mem"
)

// StepsPerFrame is the number of instructions RunFrame retires: one
// 33.8688 MHz CPU clock's worth of cycles per 60 Hz frame, at the
// functional model's one instruction per cycle.
const StepsPerFrame = 33868800 / 60

// Emulator owns a complete machine: CPU, bus, interrupt controller and
// instruction cache, wired together.
type Emulator struct {
	cpu    *CPU
	bus    *mem.Bus
	icache *icache.Cache
	irq    *irq.Controller

	log *slog.Logger

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithLogger sets the structured logger used by every component.
func WithLogger(log *slog.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.log = log
	}
}

// WithMaxInstructions sets the maximum number of instructions to
// execute. A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithoutInstructionCache disables the functional instruction cache;
// every fetch then reads straight from the bus.
func WithoutInstructionCache() EmulatorOption {
	return func(e *Emulator) {
		e.icache = nil
	}
}

// NewEmulator creates a machine in its reset state. Firmware is loaded
// separately with LoadFirmware.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		log:    slog.Default(),
		icache: icache.New(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.bus = mem.NewBus(e.log)
	e.irq = irq.NewController(e.log)
	e.bus.Map("irq", irq.BusBase, irq.BusSize, e.irq)

	if e.icache != nil {
		// Keep the cache coherent with DMA and other direct RAM
		// writers.
		ic := e.icache
		e.bus.SetRAMWriteObserver(func(paddr uint32, _ mem.Width) {
			ic.Invalidate(paddr)
		})
	}

	e.cpu = NewCPU(e.bus, e.icache, e.irq, e.log)
	return e
}

// CPU returns the processor core.
func (e *Emulator) CPU() *CPU { return e.cpu }

// Bus returns the memory bus.
func (e *Emulator) Bus() *mem.Bus { return e.bus }

// IRQ returns the interrupt controller.
func (e *Emulator) IRQ() *irq.Controller { return e.irq }

// InstructionCount returns the number of steps retired since reset.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// LoadFirmware installs the BIOS ROM image.
func (e *Emulator) LoadFirmware(image []byte) error {
	return e.bus.LoadFirmware(image)
}

// LoadExecutable side-loads a parsed PS-X EXE into RAM and points the
// CPU at its entry point, the way the shell does after the BIOS boot.
func (e *Emulator) LoadExecutable(exe *loader.Executable) error {
	paddr := mem.Translate(exe.LoadAddr)
	if int(paddr)+len(exe.Data) > mem.RAMSize {
		return fmt.Errorf("executable at 0x%08X with %d bytes does not fit in RAM",
			exe.LoadAddr, len(exe.Data))
	}

	copy(e.bus.RAM()[paddr:], exe.Data)
	if e.icache != nil {
		e.icache.InvalidateRange(paddr, paddr+uint32(len(exe.Data)))
	}

	regs := e.cpu.Regs()
	regs.PC = exe.PC
	regs.NextPC = exe.PC + 4
	regs.WriteReg(28, exe.GP)
	regs.WriteReg(29, exe.SP)
	regs.WriteReg(30, exe.SP)
	return nil
}

// Reset returns the machine to its power-on state. Firmware and RAM
// contents are preserved; the interrupt controller is not, matching
// the hardware reset line.
func (e *Emulator) Reset() {
	e.cpu.Reset()
	e.irq.Acknowledge(0xFFFF)
	e.irq.SetMask(0)
	e.instructionCount = 0
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	result := e.cpu.Step()
	e.instructionCount++
	return result
}

// Run steps until the instruction budget is exhausted. With no budget
// set it runs one frame.
func (e *Emulator) Run() {
	if e.maxInstructions == 0 {
		e.RunFrame()
		return
	}
	for e.instructionCount < e.maxInstructions {
		e.Step()
	}
}

// RunFrame executes one video frame's worth of instructions, stopping
// on an instruction boundary.
func (e *Emulator) RunFrame() {
	for i := 0; i < StepsPerFrame; i++ {
		if e.maxInstructions != 0 && e.instructionCount >= e.maxInstructions {
			return
		}
		e.Step()
	}
}
