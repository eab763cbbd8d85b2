// Package mem implements the PSX memory bus: 2 MiB of RAM, the 1 KiB
// scratchpad, the 512 KiB BIOS ROM, and a 4 KiB memory-mapped I/O window
// served by registered peripheral handlers. The three MIPS segments
// (KUSEG, KSEG0, KSEG1) mirror one physical space.
package mem

import (
	"fmt"
	"log/slog"
)

// Width is an access size in bytes.
type Width uint8

// Access widths.
const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
)

// Handler serves a sub-range of the I/O window. Offsets are relative to
// the handler's registered base. A non-nil error is a bus fault: the CPU
// turns it into a data bus error exception. Handlers must not call back
// into the bus.
type Handler interface {
	Read(width Width, offset uint32) (uint32, error)
	Write(width Width, offset uint32, value uint32) error
}

type ioMapping struct {
	name    string
	base    uint32 // offset within the I/O window
	size    uint32
	handler Handler
}

// Bus is the system memory bus. Accesses must be aligned to their width;
// the CPU raises address errors before the bus is reached.
type Bus struct {
	ram     []byte
	scratch []byte
	bios    []byte

	mappings []ioMapping

	// cacheCtl backs the KSEG2 cache-control port. Only storage; the
	// functional cache reads isolation state from COP0, not from here.
	cacheCtl uint32

	// onRAMWrite, when set, is told about every RAM store so the
	// instruction cache can drop stale lines.
	onRAMWrite func(paddr uint32, width Width)

	log *slog.Logger
}

// NewBus creates a bus with zeroed RAM and scratchpad and an empty BIOS.
func NewBus(log *slog.Logger) *Bus {
	if log == nil {
		log = slog.Default()
	}
	return &Bus{
		ram:     make([]byte, RAMSize),
		scratch: make([]byte, ScratchpadSize),
		bios:    make([]byte, BIOSSize),
		log:     log,
	}
}

// LoadFirmware installs the BIOS ROM image. The image must be exactly
// the size of the ROM chip.
func (b *Bus) LoadFirmware(image []byte) error {
	if len(image) != BIOSSize {
		return fmt.Errorf("firmware image is %d bytes, want %d", len(image), BIOSSize)
	}
	copy(b.bios, image)
	return nil
}

// Map registers a peripheral handler over [base, base+size) within the
// I/O window. Ranges must not overlap; later registrations win on
// lookup order, so overlap is a wiring bug.
func (b *Bus) Map(name string, base, size uint32, h Handler) {
	b.mappings = append(b.mappings, ioMapping{name: name, base: base, size: size, handler: h})
}

// SetRAMWriteObserver registers a callback fired after every RAM store.
func (b *Bus) SetRAMWriteObserver(fn func(paddr uint32, width Width)) {
	b.onRAMWrite = fn
}

// RAM exposes the backing RAM buffer for the executable loader.
func (b *Bus) RAM() []byte {
	return b.ram
}

// Read8 reads one byte.
func (b *Bus) Read8(vaddr uint32) (uint32, error) {
	return b.read(Width8, vaddr)
}

// Read16 reads a halfword. vaddr must be 2-byte aligned.
func (b *Bus) Read16(vaddr uint32) (uint32, error) {
	return b.read(Width16, vaddr)
}

// Read32 reads a word. vaddr must be 4-byte aligned.
func (b *Bus) Read32(vaddr uint32) (uint32, error) {
	return b.read(Width32, vaddr)
}

// Write8 writes one byte.
func (b *Bus) Write8(vaddr uint32, value uint32) error {
	return b.write(Width8, vaddr, value)
}

// Write16 writes a halfword. vaddr must be 2-byte aligned.
func (b *Bus) Write16(vaddr uint32, value uint32) error {
	return b.write(Width16, vaddr, value)
}

// Write32 writes a word. vaddr must be 4-byte aligned.
func (b *Bus) Write32(vaddr uint32, value uint32) error {
	return b.write(Width32, vaddr, value)
}

// read returns a bus fault only when a peripheral handler reports one.
// Unmapped reads stay benign: log and read zero.
func (b *Bus) read(width Width, vaddr uint32) (uint32, error) {
	region, offset := Resolve(vaddr)

	switch region {
	case RegionRAM:
		return loadLE(b.ram, offset, width), nil
	case RegionScratchpad:
		return loadLE(b.scratch, offset, width), nil
	case RegionBIOS:
		return loadLE(b.bios, offset, width), nil
	case RegionIO:
		if m := b.mappingAt(offset); m != nil {
			value, err := m.handler.Read(width, offset-m.base)
			if err != nil {
				b.log.Warn("io read fault",
					"peripheral", m.name, "addr", hex32(vaddr), "err", err)
				return 0, fmt.Errorf("%s read at %s: %w", m.name, hex32(vaddr), err)
			}
			return value, nil
		}
		b.log.Debug("unhandled io read", "addr", hex32(vaddr), "width", int(width))
		return 0, nil
	case RegionCacheControl:
		return b.cacheCtl, nil
	default:
		b.log.Warn("read from unmapped address", "addr", hex32(vaddr), "width", int(width))
		return 0, nil
	}
}

func (b *Bus) write(width Width, vaddr uint32, value uint32) error {
	region, offset := Resolve(vaddr)

	switch region {
	case RegionRAM:
		storeLE(b.ram, offset, width, value)
		if b.onRAMWrite != nil {
			b.onRAMWrite(offset, width)
		}
	case RegionScratchpad:
		storeLE(b.scratch, offset, width, value)
	case RegionBIOS:
		// The ROM ignores stores. The BIOS never does this on purpose,
		// so it is worth a log line.
		b.log.Warn("write to firmware rom discarded",
			"addr", hex32(vaddr), "value", hex32(value))
	case RegionIO:
		if m := b.mappingAt(offset); m != nil {
			if err := m.handler.Write(width, offset-m.base, value); err != nil {
				b.log.Warn("io write fault",
					"peripheral", m.name, "addr", hex32(vaddr), "err", err)
				return fmt.Errorf("%s write at %s: %w", m.name, hex32(vaddr), err)
			}
			return nil
		}
		b.log.Debug("unhandled io write",
			"addr", hex32(vaddr), "value", hex32(value), "width", int(width))
	case RegionCacheControl:
		b.cacheCtl = value
	default:
		b.log.Warn("write to unmapped address dropped",
			"addr", hex32(vaddr), "value", hex32(value), "width", int(width))
	}
	return nil
}

func (b *Bus) mappingAt(offset uint32) *ioMapping {
	for i := range b.mappings {
		m := &b.mappings[i]
		if offset >= m.base && offset < m.base+m.size {
			return m
		}
	}
	return nil
}

// loadLE composes a little-endian value from individual bytes.
func loadLE(buf []byte, offset uint32, width Width) uint32 {
	switch width {
	case Width8:
		return uint32(buf[offset])
	case Width16:
		return uint32(buf[offset]) | uint32(buf[offset+1])<<8
	default:
		return uint32(buf[offset]) |
			uint32(buf[offset+1])<<8 |
			uint32(buf[offset+2])<<16 |
			uint32(buf[offset+3])<<24
	}
}

// storeLE decomposes a value into little-endian bytes.
func storeLE(buf []byte, offset uint32, width Width, value uint32) {
	switch width {
	case Width8:
		buf[offset] = byte(value)
	case Width16:
		buf[offset] = byte(value)
		buf[offset+1] = byte(value >> 8)
	default:
		buf[offset] = byte(value)
		buf[offset+1] = byte(value >> 8)
		buf[offset+2] = byte(value >> 16)
		buf[offset+3] = byte(value >> 24)
	}
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}
