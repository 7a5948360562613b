//go:build amd64 && !noasm

// File: spinlock/relax_amd64.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Declaration of cpuRelax on amd64. The body lives in relax_amd64.s and
// issues a single PAUSE.

package spinlock

// cpuRelax executes PAUSE, telling the core it is in a spin-wait loop.
//
//go:noescape
func cpuRelax()
