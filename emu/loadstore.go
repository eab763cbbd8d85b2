package emu

import (
	"github.com/psxcore/psxcore/insts"
	"github.com/psxcore/psxcore/mem"
)

// load executes the aligned load group. The value arrives through the
// delay buffer, so it becomes visible two steps after the load.
func (c *CPU) load(inst *insts.Instruction) {
	addr := c.regs.ReadReg(inst.Rs) + uint32(inst.SignedImm())

	var value uint32
	var err error
	switch inst.Op {
	case insts.OpLB:
		value, err = c.bus.Read8(addr)
		value = uint32(int32(int8(value)))
	case insts.OpLBU:
		value, err = c.bus.Read8(addr)
	case insts.OpLH:
		if addr&0x1 != 0 {
			c.addressError(ExcAddressErrorLoad, addr)
			return
		}
		value, err = c.bus.Read16(addr)
		value = uint32(int32(int16(value)))
	case insts.OpLHU:
		if addr&0x1 != 0 {
			c.addressError(ExcAddressErrorLoad, addr)
			return
		}
		value, err = c.bus.Read16(addr)
	case insts.OpLW:
		if addr&0x3 != 0 {
			c.addressError(ExcAddressErrorLoad, addr)
			return
		}
		value, err = c.bus.Read32(addr)
	}
	if err != nil {
		c.exception(ExcBusErrorData)
		return
	}

	c.setRegDelayed(inst.Rt, value)
}

// store executes the aligned store group. With the cache isolated,
// stores invalidate instruction-cache lines instead of reaching memory;
// that is how the BIOS flushes the cache.
func (c *CPU) store(inst *insts.Instruction) {
	addr := c.regs.ReadReg(inst.Rs) + uint32(inst.SignedImm())
	value := c.regs.ReadReg(inst.Rt)

	switch inst.Op {
	case insts.OpSH:
		if addr&0x1 != 0 {
			c.addressError(ExcAddressErrorStore, addr)
			return
		}
	case insts.OpSW:
		if addr&0x3 != 0 {
			c.addressError(ExcAddressErrorStore, addr)
			return
		}
	}

	if c.cop0.CacheIsolated() {
		if c.icache != nil {
			c.icache.Invalidate(mem.Translate(addr))
		}
		return
	}

	var err error
	switch inst.Op {
	case insts.OpSB:
		err = c.bus.Write8(addr, value)
	case insts.OpSH:
		err = c.bus.Write16(addr, value)
	case insts.OpSW:
		err = c.bus.Write32(addr, value)
	}
	if err != nil {
		c.exception(ExcBusErrorData)
	}
}

// loadUnaligned executes LWL and LWR: each reads the enclosing aligned
// word and merges the covered bytes into the register. The pair merges
// through the delay buffer, so an LWL/LWR sequence to the same register
// assembles a full unaligned word.
func (c *CPU) loadUnaligned(inst *insts.Instruction) {
	addr := c.regs.ReadReg(inst.Rs) + uint32(inst.SignedImm())

	cur := c.regs.ReadReg(inst.Rt)
	if pending, ok := c.delay.Peek(inst.Rt); ok {
		cur = pending
	}

	word, err := c.bus.Read32(addr &^ 0x3)
	if err != nil {
		c.exception(ExcBusErrorData)
		return
	}
	shift := (addr & 0x3) * 8

	var value uint32
	if inst.Op == insts.OpLWL {
		value = cur&(0x00FFFFFF>>shift) | word<<(24-shift)
	} else {
		value = cur&^(0xFFFFFFFF>>shift) | word>>shift
	}

	c.setRegDelayed(inst.Rt, value)
}

// storeUnaligned executes SWL and SWR with a read-modify-write of the
// enclosing aligned word.
func (c *CPU) storeUnaligned(inst *insts.Instruction) {
	addr := c.regs.ReadReg(inst.Rs) + uint32(inst.SignedImm())
	reg := c.regs.ReadReg(inst.Rt)

	if c.cop0.CacheIsolated() {
		if c.icache != nil {
			c.icache.Invalidate(mem.Translate(addr))
		}
		return
	}

	aligned := addr &^ 0x3
	word, err := c.bus.Read32(aligned)
	if err != nil {
		c.exception(ExcBusErrorData)
		return
	}
	shift := (addr & 0x3) * 8

	var value uint32
	if inst.Op == insts.OpSWL {
		value = word&^(0xFFFFFFFF>>(24-shift)) | reg>>(24-shift)
	} else {
		value = word&(0x00FFFFFF>>(24-shift)) | reg<<shift
	}

	if err := c.bus.Write32(aligned, value); err != nil {
		c.exception(ExcBusErrorData)
	}
}

// addressError records the faulting address and raises the exception.
func (c *CPU) addressError(cause ExceptionCause, addr uint32) {
	c.cop0.Write(Cop0BadVaddr, addr)
	c.exception(cause)
}
