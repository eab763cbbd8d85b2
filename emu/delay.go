package emu

// delayedWrite is one pending register write from a load (or MFC0).
type delayedWrite struct {
	reg   uint8
	value uint32
	valid bool
}

// DelayBuffer models the load delay slot with two explicit stages. A
// load arms an entry; on the next step it moves to the committing
// stage, where the instruction in the delay slot still sees the old
// register value; at the start of the step after that it is applied.
//
// A direct register write from the delay-slot instruction cancels a
// committing entry for the same register: the pipeline writes the load
// back first, so the younger instruction's value survives.
type DelayBuffer struct {
	committing delayedWrite
	armed      delayedWrite
}

// Arm schedules a delayed write. Only one load executes per step, so a
// previously armed entry has already shifted by the time this is
// called.
func (d *DelayBuffer) Arm(reg uint8, value uint32) {
	d.armed = delayedWrite{reg: reg, value: value, valid: true}
}

// Advance applies the committing entry to the register file and shifts
// the armed entry into the committing stage. Called once at the start
// of every step.
func (d *DelayBuffer) Advance(regs *RegFile) {
	if d.committing.valid {
		regs.WriteReg(d.committing.reg, d.committing.value)
	}
	d.committing = d.armed
	d.armed = delayedWrite{}
}

// CancelIf drops a committing entry targeting reg.
func (d *DelayBuffer) CancelIf(reg uint8) {
	if d.committing.valid && d.committing.reg == reg {
		d.committing = delayedWrite{}
	}
}

// Peek returns the committing value for reg, if any. LWL/LWR merge
// with an in-flight load to the same register instead of the stale
// register file contents.
func (d *DelayBuffer) Peek(reg uint8) (uint32, bool) {
	if d.committing.valid && d.committing.reg == reg {
		return d.committing.value, true
	}
	return 0, false
}

// Reset clears both stages.
func (d *DelayBuffer) Reset() {
	d.committing = delayedWrite{}
	d.armed = delayedWrite{}
}
