//go:build amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm

// le_check.go - The presenter requires a little-endian host.
//
// Emulated memory is little-endian and the OpenGL device hands packed 16 and
// 32 bit framebuffer words to GL unswapped; GL reads them in host order. The
// sibling file be_unsupported.go fails the build everywhere else.

package main
