//go:build linux

package parallel

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore locks the calling goroutine to its OS thread and binds that
// thread to a single CPU core. The lock is intentionally never released:
// pinned workers keep their thread for the lifetime of the pool.
func pinToCore(core int) error {
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	return unix.SchedSetaffinity(0, &set)
}
