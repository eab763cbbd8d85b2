package mem

// Physical memory map. All sizes are fixed by the hardware.
const (
	RAMBase = 0x00000000
	RAMSize = 2 * 1024 * 1024

	ScratchpadBase = 0x1F800000
	ScratchpadSize = 1024

	IOBase = 0x1F801000
	IOSize = 4096

	BIOSBase = 0x1FC00000
	BIOSSize = 512 * 1024

	// Cache-control port. Lives in KSEG2, above the mirror mask, so it
	// is matched on the virtual address.
	CacheControlAddr = 0xFFFE0130
)

// Region identifies which part of the map a physical address falls in.
type Region uint8

// Memory regions.
const (
	RegionUnmapped Region = iota
	RegionRAM
	RegionScratchpad
	RegionIO
	RegionBIOS
	RegionCacheControl
)

// String returns the region name for log output.
func (r Region) String() string {
	switch r {
	case RegionRAM:
		return "ram"
	case RegionScratchpad:
		return "scratchpad"
	case RegionIO:
		return "io"
	case RegionBIOS:
		return "bios"
	case RegionCacheControl:
		return "cache-control"
	default:
		return "unmapped"
	}
}

// Translate maps a virtual address to a physical one. KUSEG, KSEG0 and
// KSEG1 all mirror the same physical space, so masking the upper three
// bits handles every segment at once.
func Translate(vaddr uint32) uint32 {
	return vaddr & 0x1FFFFFFF
}

// Resolve identifies the region a virtual address belongs to and the
// byte offset within that region.
func Resolve(vaddr uint32) (Region, uint32) {
	if vaddr == CacheControlAddr {
		return RegionCacheControl, 0
	}

	paddr := Translate(vaddr)

	switch {
	case paddr < RAMBase+RAMSize:
		return RegionRAM, paddr - RAMBase
	case paddr >= ScratchpadBase && paddr < ScratchpadBase+ScratchpadSize:
		return RegionScratchpad, paddr - ScratchpadBase
	case paddr >= IOBase && paddr < IOBase+IOSize:
		return RegionIO, paddr - IOBase
	case paddr >= BIOSBase && paddr < BIOSBase+BIOSSize:
		return RegionBIOS, paddr - BIOSBase
	default:
		return RegionUnmapped, paddr
	}
}
