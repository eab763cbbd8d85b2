package loader

import (
	"bytes"
	"fmt"
)

// PS-X EXE header layout.
const (
	exeHeaderSize = 0x800
	exeMagic      = "PS-X EXE"

	offPC       = 0x10
	offGP       = 0x14
	offLoadAddr = 0x18
	offLoadSize = 0x1C
	offStack    = 0x30
	offStackOff = 0x34
)

// DefaultStack is the conventional initial stack pointer when the
// header leaves it zero.
const DefaultStack = 0x801FFF00

// Executable is a parsed PS-X EXE image, ready to side-load into RAM.
type Executable struct {
	// PC is the entry point.
	PC uint32
	// GP is the initial global pointer (r28).
	GP uint32
	// SP is the initial stack pointer (r29), stack base plus offset.
	SP uint32
	// LoadAddr is where Data goes in memory.
	LoadAddr uint32
	// Data is the program image, exeHeader excluded.
	Data []byte
}

// ParseEXE parses a PS-X EXE image.
func ParseEXE(data []byte) (*Executable, error) {
	if len(data) < exeHeaderSize {
		return nil, fmt.Errorf("EXE image is %d bytes, shorter than the %d byte header",
			len(data), exeHeaderSize)
	}
	if !bytes.Equal(data[:len(exeMagic)], []byte(exeMagic)) {
		return nil, fmt.Errorf("EXE image has bad magic %q", data[:len(exeMagic)])
	}

	le32 := func(off int) uint32 {
		return uint32(data[off]) |
			uint32(data[off+1])<<8 |
			uint32(data[off+2])<<16 |
			uint32(data[off+3])<<24
	}

	size := le32(offLoadSize)
	if int(size) > len(data)-exeHeaderSize {
		return nil, fmt.Errorf("EXE load size 0x%X exceeds image payload 0x%X",
			size, len(data)-exeHeaderSize)
	}

	sp := le32(offStack) + le32(offStackOff)
	if sp == 0 {
		sp = DefaultStack
	}

	return &Executable{
		PC:       le32(offPC),
		GP:       le32(offGP),
		SP:       sp,
		LoadAddr: le32(offLoadAddr),
		Data:     data[exeHeaderSize : exeHeaderSize+int(size)],
	}, nil
}
