// registers.go - Address map of the emulated dual-screen device

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
registers.go - Master Address Map

This file is the reference for every address the presenter touches. Register
field layouts live next to their decoders in gpu_regs.go.

PHYSICAL / VIRTUAL MEMORY MAP
=============================

Region      Physical      Virtual       Size     Contents
---------------------------------------------------------------------------
I/O         0x10100000    0x1EC00000    4MB      LCD + GPU register blocks
VRAM        0x18000000    0x1F000000    6MB      framebuffers (usually)
FCRAM       0x20000000    0x14000000    128MB    linear heap, framebuffers

Framebuffer addresses in the GPU registers are physical. The presenter
translates them with ResolveAddress before reading pixels.

REGISTER BLOCKS (virtual)
=========================

LCD (0x1ED02000)
  0x204   COLOR_FILL_TOP     r:0-7 g:8-15 b:16-23 enable:24
  0xA04   COLOR_FILL_BOTTOM  same layout

GPU (0x1EF00000)
  0x400   FRAMEBUFFER_TOP    0x100 byte FramebufferConfig block
  0x500   FRAMEBUFFER_BOTTOM 0x100 byte FramebufferConfig block

FramebufferConfig block (offsets inside the block)
  0x5C    size        width:0-15 height:16-31
  0x68    left addr 1
  0x6C    left addr 2
  0x70    format      color_format:0-2
  0x78    active_fb   second_fb_active:0
  0x90    stride      bytes per row
  0x94    right addr 1
  0x98    right addr 2
*/

package main

// =============================================================================
// Memory regions
// =============================================================================

const (
	PADDR_IO    = 0x10100000
	VADDR_IO    = 0x1EC00000
	IO_SIZE     = 0x00400000
	PADDR_VRAM  = 0x18000000
	VADDR_VRAM  = 0x1F000000
	VRAM_SIZE   = 0x00600000
	PADDR_FCRAM = 0x20000000
	VADDR_FCRAM = 0x14000000
	FCRAM_SIZE  = 0x08000000
)

// =============================================================================
// Register blocks
// =============================================================================

const (
	VADDR_LCD = 0x1ED02000
	VADDR_GPU = 0x1EF00000

	LCD_COLOR_FILL_TOP    = 0x204
	LCD_COLOR_FILL_BOTTOM = 0xA04

	GPU_FRAMEBUFFER_TOP    = 0x400
	GPU_FRAMEBUFFER_BOTTOM = 0x500
	GPU_FRAMEBUFFER_SIZE   = 0x100
)

// Field offsets inside a FramebufferConfig block
const (
	FB_REG_SIZE          = 0x5C
	FB_REG_ADDR_LEFT1    = 0x68
	FB_REG_ADDR_LEFT2    = 0x6C
	FB_REG_FORMAT        = 0x70
	FB_REG_ACTIVE        = 0x78
	FB_REG_STRIDE        = 0x90
	FB_REG_ADDR_RIGHT1   = 0x94
	FB_REG_ADDR_RIGHT2   = 0x98
	FB_REG_FORMAT_MASK   = 0x7
	FB_REG_ACTIVE_SECOND = 0x1
)

// ColorFill word fields
const (
	COLOR_FILL_R_SHIFT    = 0
	COLOR_FILL_G_SHIFT    = 8
	COLOR_FILL_B_SHIFT    = 16
	COLOR_FILL_ENABLE_BIT = 1 << 24
)

// =============================================================================
// Screens
// =============================================================================

const (
	SCREEN_TOP    = 0
	SCREEN_BOTTOM = 1
	SCREEN_COUNT  = 2

	// Native panel resolution as seen by the user (landscape). The
	// framebuffers themselves are stored rotated: width and height swapped.
	SCREEN_TOP_WIDTH     = 400
	SCREEN_TOP_HEIGHT    = 240
	SCREEN_BOTTOM_WIDTH  = 320
	SCREEN_BOTTOM_HEIGHT = 240
)

func framebufferRegAddr(screen int) uint32 {
	if screen == SCREEN_TOP {
		return VADDR_GPU + GPU_FRAMEBUFFER_TOP
	}
	return VADDR_GPU + GPU_FRAMEBUFFER_BOTTOM
}

func colorFillRegAddr(screen int) uint32 {
	if screen == SCREEN_TOP {
		return VADDR_LCD + LCD_COLOR_FILL_TOP
	}
	return VADDR_LCD + LCD_COLOR_FILL_BOTTOM
}
