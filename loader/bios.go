// Package loader provides BIOS ROM and PS-X EXE image loading.
package loader

import (
	"fmt"
	"os"
)

// BIOSSize is the exact size of a PSX BIOS ROM image.
const BIOSSize = 512 * 1024

// LoadBIOS reads a BIOS ROM image from disk. Anything but an exact
// 512 KiB image is rejected; a truncated or padded dump would boot into
// garbage.
func LoadBIOS(path string) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read BIOS image: %w", err)
	}

	if len(image) != BIOSSize {
		return nil, fmt.Errorf("BIOS image %s is %d bytes, want %d",
			path, len(image), BIOSSize)
	}

	return image, nil
}
