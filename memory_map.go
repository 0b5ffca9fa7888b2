// memory_map.go - Emulated memory map backing the presenter

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
memory_map.go - Emulated Memory Map

This module implements the memory collaborator the presenter reads from. It
owns three contiguous regions (I/O registers, VRAM and FCRAM), each reachable
through a physical and a virtual window, and hands out borrowed byte views
into them.

Core Features:

    Physical to virtual address translation for every mapped region.
    Borrowed, bounds-checked byte views (no copies) for framebuffer uploads.
    Little-endian 32-bit register access for the emulated GPU side.

Concurrency:

    The emulated GPU writes pixels from its own goroutine while the presenter
    reads them, with no lock between the two. A frame may be
    read while it is still being written, which shows up as tearing. Views are
    plain byte slices, so a torn read can never touch memory outside a region.
*/

package main

import (
	"encoding/binary"
)

// MemoryAccessor is the memory/register collaborator consumed by the presenter.
type MemoryAccessor interface {
	// ResolveAddress maps a physical address to its virtual address, or 0
	// when the address is not mapped.
	ResolveAddress(paddr uint32) uint32

	// ReadBytes returns a borrowed view of length bytes at vaddr. The view
	// is shorter than length (possibly nil) when the range leaves the region.
	ReadBytes(vaddr uint32, length int) []byte
}

type memoryRegion struct {
	name  string
	paddr uint32
	vaddr uint32
	data  []byte
}

func (r *memoryRegion) containsPhysical(paddr uint32) bool {
	return paddr >= r.paddr && paddr-r.paddr < uint32(len(r.data))
}

func (r *memoryRegion) containsVirtual(vaddr uint32) bool {
	return vaddr >= r.vaddr && vaddr-r.vaddr < uint32(len(r.data))
}

// MemoryMap implements MemoryAccessor over the I/O, VRAM and FCRAM regions.
type MemoryMap struct {
	regions []*memoryRegion
}

func NewMemoryMap() *MemoryMap {
	/*
		NewMemoryMap allocates every region up front. FCRAM is the
		largest allocation; it is only touched when a program places
		framebuffers in the linear heap.
	*/

	return &MemoryMap{
		regions: []*memoryRegion{
			{name: "io", paddr: PADDR_IO, vaddr: VADDR_IO, data: make([]byte, IO_SIZE)},
			{name: "vram", paddr: PADDR_VRAM, vaddr: VADDR_VRAM, data: make([]byte, VRAM_SIZE)},
			{name: "fcram", paddr: PADDR_FCRAM, vaddr: VADDR_FCRAM, data: make([]byte, FCRAM_SIZE)},
		},
	}
}

func (m *MemoryMap) ResolveAddress(paddr uint32) uint32 {
	for _, r := range m.regions {
		if r.containsPhysical(paddr) {
			return r.vaddr + (paddr - r.paddr)
		}
	}
	return 0
}

func (m *MemoryMap) region(vaddr uint32) *memoryRegion {
	for _, r := range m.regions {
		if r.containsVirtual(vaddr) {
			return r
		}
	}
	return nil
}

func (m *MemoryMap) ReadBytes(vaddr uint32, length int) []byte {
	/*
		ReadBytes clips the view at the end of the region instead of
		failing, so callers can tell "unmapped" (nil) from "runs off the
		end" (short view) by comparing the length.
	*/

	r := m.region(vaddr)
	if r == nil || length <= 0 {
		return nil
	}
	off := int(vaddr - r.vaddr)
	if length > len(r.data)-off {
		length = len(r.data) - off
	}
	end := off + length
	return r.data[off:end:end]
}

// WriteBytes copies data into emulated memory at vaddr and returns the
// number of bytes written.
func (m *MemoryMap) WriteBytes(vaddr uint32, data []byte) int {
	r := m.region(vaddr)
	if r == nil {
		return 0
	}
	return copy(r.data[vaddr-r.vaddr:], data)
}

func (m *MemoryMap) Read32(vaddr uint32) uint32 {
	b := m.ReadBytes(vaddr, 4)
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (m *MemoryMap) Write32(vaddr uint32, value uint32) {
	r := m.region(vaddr)
	if r == nil {
		return
	}
	off := vaddr - r.vaddr
	if int(off)+4 > len(r.data) {
		return
	}
	binary.LittleEndian.PutUint32(r.data[off:], value)
}

// WriteFramebufferConfig stores a register block for the given screen.
func (m *MemoryMap) WriteFramebufferConfig(screen int, cfg FramebufferConfig) {
	block := m.ReadBytes(framebufferRegAddr(screen), GPU_FRAMEBUFFER_SIZE)
	if len(block) < GPU_FRAMEBUFFER_SIZE {
		return
	}
	cfg.encode(block)
}

func (m *MemoryMap) WriteColorFill(screen int, fill ColorFill) {
	m.Write32(colorFillRegAddr(screen), fill.raw())
}
