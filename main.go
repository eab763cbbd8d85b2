// Package main provides the entry point for psxcore.
// psxcore is a functional PlayStation R3000A CPU and memory emulator.
//
// For the full CLI, use: go run ./cmd/psxcore
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("psxcore - PlayStation R3000A CPU emulator")
	fmt.Println("")
	fmt.Println("Usage: psxcore [options] <bios.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -exe      PS-X EXE to side-load after reset")
	fmt.Println("  -steps    Instruction budget")
	fmt.Println("  -frames   Number of frames to run")
	fmt.Println("  -trace    Disassembled execution trace")
	fmt.Println("  -v        Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/psxcore' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/psxcore' instead.")
	}
}
