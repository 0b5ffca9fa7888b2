//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// Packed framebuffer words are uploaded in emulated (little-endian) byte
// order and interpreted by the graphics device in host order.
var _ = "the dual screen presenter requires a little-endian architecture" + 1
