// Command bench measures functional emulation throughput on a set of
// hand-encoded microbenchmark kernels.
//
// Usage:
//
//	go run ./cmd/bench [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: human-readable)
//	-steps      Steps to run per kernel
//	-no-icache  Disable the instruction cache
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/psxcore/psxcore/emu"
)

var (
	csvOutput = flag.Bool("csv", false, "Output results in CSV format")
	steps     = flag.Uint64("steps", 5_000_000, "Steps to run per kernel")
	noICache  = flag.Bool("no-icache", false, "Disable the instruction cache")
)

// kernel is one microbenchmark: a program and the registers it needs.
type kernel struct {
	name    string
	program []uint32
	regs    map[uint8]uint32
}

// Each kernel loops forever; the step budget bounds the run.
var kernels = []kernel{
	{
		// Tight dependent adds, the best case for the step loop.
		name: "arithmetic_loop",
		program: []uint32{
			0x20210001, // addi $1, $1, 1
			0x00221820, // add  $3, $1, $2
			0x08000400, // j    0x80001000
			0x00411020, // add  $2, $2, $1 (delay slot)
		},
	},
	{
		// Sequential word traffic through RAM.
		name: "memory_sequential",
		program: []uint32{
			0x8C220000, // lw   $2, 0($1)
			0xAC220004, // sw   $2, 4($1)
			0x08000400, // j    0x80001000
			0x20210008, // addi $1, $1, 8 (delay slot)
		},
		regs: map[uint8]uint32{1: 0x00010000},
	},
	{
		// Alternating taken branches.
		name: "branch_heavy",
		program: []uint32{
			0x20210001, // addi $1, $1, 1
			0x30220001, // andi $2, $1, 1
			0x10400002, // beq  $2, $0, +2
			0x00000000, // nop
			0x08000400, // j    0x80001000
			0x00000000, // nop
		},
	},
	{
		// Unaligned quartet working a straddling word.
		name: "unaligned_word",
		program: []uint32{
			0x88220009, // lwl  $2, 9($1)
			0x98220006, // lwr  $2, 6($1)
			0xA8220009, // swl  $2, 9($1)
			0xB8220006, // swr  $2, 6($1)
			0x08000400, // j    0x80001000
			0x00000000, // nop
		},
		regs: map[uint8]uint32{1: 0x00020000},
	},
}

func main() {
	flag.Parse()

	if *csvOutput {
		fmt.Println("kernel,steps,seconds,mips")
	} else {
		fmt.Println("psxcore functional throughput")
		fmt.Println("=============================")
	}

	for _, k := range kernels {
		runKernel(k)
	}
}

func runKernel(k kernel) {
	const base = 0x80001000

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := []emu.EmulatorOption{emu.WithLogger(quiet)}
	if *noICache {
		opts = append(opts, emu.WithoutInstructionCache())
	}
	emulator := emu.NewEmulator(opts...)

	for i, w := range k.program {
		emulator.Bus().Write32(base+uint32(i)*4, w)
	}
	for reg, v := range k.regs {
		emulator.CPU().Regs().WriteReg(reg, v)
	}
	emulator.CPU().Regs().PC = base
	emulator.CPU().Regs().NextPC = base + 4

	start := time.Now()
	for i := uint64(0); i < *steps; i++ {
		emulator.Step()
	}
	elapsed := time.Since(start)

	mips := float64(*steps) / elapsed.Seconds() / 1e6
	if *csvOutput {
		fmt.Printf("%s,%d,%.3f,%.1f\n", k.name, *steps, elapsed.Seconds(), mips)
	} else {
		fmt.Printf("%-18s %10d steps in %8.3fs  %8.1f MIPS\n",
			k.name, *steps, elapsed.Seconds(), mips)
	}
}
