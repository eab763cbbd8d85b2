// Package icache implements the R3000A instruction cache as a functional
// model: 4 KiB, direct-mapped, one instruction word per line. Timing is
// not modeled, but the cache-isolation protocol is, because the BIOS
// flush sequence depends on it.
package icache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Cache geometry. 4 KiB of word-sized lines, direct-mapped.
const (
	lineSize = 4
	numLines = 1024
)

// Statistics holds cache hit/miss counters.
type Statistics struct {
	Fetches       uint64
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

// Cache is the instruction cache. Tag and replacement state live in an
// akita cache directory; the cached words live alongside, indexed the
// same way.
type Cache struct {
	directory *akitacache.DirectoryImpl
	words     []uint32
	stats     Statistics
}

// New creates an empty instruction cache.
func New() *Cache {
	return &Cache{
		directory: akitacache.NewDirectory(
			numLines,
			1, // direct-mapped
			lineSize,
			akitacache.NewLRUVictimFinder(),
		),
		words: make([]uint32, numLines),
	}
}

func (c *Cache) wordIndex(block *akitacache.Block) int {
	return block.SetID // one way per set
}

func lineAddr(addr uint32) uint64 {
	return uint64(addr &^ 0x3)
}

// Fetch looks up the instruction word at addr. The boolean reports a hit.
func (c *Cache) Fetch(addr uint32) (uint32, bool) {
	c.stats.Fetches++

	block := c.directory.Lookup(0, lineAddr(addr))
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		return c.words[c.wordIndex(block)], true
	}

	c.stats.Misses++
	return 0, false
}

// Fill installs a fetched word, evicting whatever occupied the line.
func (c *Cache) Fill(addr uint32, word uint32) {
	victim := c.directory.FindVictim(lineAddr(addr))
	if victim == nil {
		return
	}

	victim.Tag = lineAddr(addr)
	victim.IsValid = true
	victim.IsDirty = false
	c.words[c.wordIndex(victim)] = word
	c.directory.Visit(victim)
}

// Invalidate drops the line holding addr, if cached. Isolated stores and
// RAM writes land here to keep the cache coherent with memory.
func (c *Cache) Invalidate(addr uint32) {
	block := c.directory.Lookup(0, lineAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		c.stats.Invalidations++
	}
}

// InvalidateRange drops every cached line in [start, end]. Used after
// bulk RAM updates such as executable side-loads.
func (c *Cache) InvalidateRange(start, end uint32) {
	if start > end {
		return
	}
	for addr := start &^ 0x3; ; addr += 4 {
		c.Invalidate(addr)
		if addr >= end&^0x3 {
			break
		}
	}
}

// Reset invalidates every line and clears the counters.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}

// Stats returns the hit/miss counters.
func (c *Cache) Stats() Statistics {
	return c.stats
}
