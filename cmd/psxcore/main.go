// Package main provides the entry point for psxcore.
// psxcore is a functional PlayStation R3000A CPU and memory emulator.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/psxcore/psxcore/emu"
	"github.com/psxcore/psxcore/loader"
)

var (
	exePath = flag.String("exe", "", "PS-X EXE to side-load after reset")
	steps   = flag.Uint64("steps", 0, "Instruction budget (0 runs whole frames)")
	frames  = flag.Int("frames", 1, "Number of frames to run when no step budget is set")
	trace   = flag.Bool("trace", false, "Print a disassembled trace of every step")
	verbose = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: psxcore [options] <bios.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(biosPath string) error {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	bios, err := loader.LoadBIOS(biosPath)
	if err != nil {
		return err
	}

	emulator := emu.NewEmulator(
		emu.WithLogger(log),
		emu.WithMaxInstructions(*steps),
	)
	if err := emulator.LoadFirmware(bios); err != nil {
		return err
	}

	if *exePath != "" {
		data, err := os.ReadFile(*exePath)
		if err != nil {
			return fmt.Errorf("failed to read executable: %w", err)
		}
		exe, err := loader.ParseEXE(data)
		if err != nil {
			return err
		}
		if err := emulator.LoadExecutable(exe); err != nil {
			return err
		}
		if *verbose {
			fmt.Printf("Loaded %s: PC=0x%08X GP=0x%08X SP=0x%08X\n",
				*exePath, exe.PC, exe.GP, exe.SP)
		}
	}

	switch {
	case *trace:
		runTraced(emulator)
	case *steps > 0:
		emulator.Run()
	default:
		for i := 0; i < *frames; i++ {
			emulator.RunFrame()
		}
	}

	if *verbose {
		fmt.Printf("\nInstructions executed: %d\n", emulator.InstructionCount())
	}
	return nil
}

// runTraced steps one instruction at a time, disassembling as it goes.
func runTraced(emulator *emu.Emulator) {
	budget := *steps
	if budget == 0 {
		budget = uint64(*frames) * emu.StepsPerFrame
	}

	for i := uint64(0); i < budget; i++ {
		result := emulator.Step()
		switch {
		case result.Inst == nil:
			fmt.Printf("%08X: <interrupt>\n", result.PC)
		case result.TookException:
			fmt.Printf("%08X: %s  -> %s\n",
				result.PC, disasm(result), result.Cause)
		default:
			fmt.Printf("%08X: %s\n", result.PC, disasm(result))
		}
	}
}

func disasm(result emu.StepResult) string {
	return result.Inst.Disassemble(result.PC)
}
