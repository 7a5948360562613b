//go:build (!amd64 && !arm64) || noasm

// File: spinlock/relax_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable fallback for targets without a spin-wait hint instruction.

package spinlock

// cpuRelax is a no-op on unsupported targets.
func cpuRelax() {}
