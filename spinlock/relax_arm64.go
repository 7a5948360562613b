//go:build arm64 && !noasm

// File: spinlock/relax_arm64.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spinlock

// cpuRelax executes YIELD (relax_arm64.s).
//
//go:noescape
func cpuRelax()
