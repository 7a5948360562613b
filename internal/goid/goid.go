// File: internal/goid/goid.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Goroutine id extraction by parsing the runtime.Stack header. Slow
// (a stack walk per call) and used only by opt-in diagnostics.

package goid

import "runtime"

// Current returns the id of the calling goroutine, or 0 if the stack header
// could not be parsed.
func Current() int64 {
	// Only the first line is needed: "goroutine 123 [running]:\n..."
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parse(buf[:n])
}

// parse extracts the numeric id following the "goroutine " prefix.
func parse(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
