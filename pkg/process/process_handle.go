package process

import (
	"time"
)

// ProcessHandle is a read-only reference to a process observed in a snapshot.
// It holds the process ID, the executable name and the process identity time
// (used to distinguish between different instances of processes with the same
// PID after PID reuse).
//
// The IdentityTime may not be a valid wall-clock time on all platforms; on Linux
// it is not populated to avoid issues with system clock changes.
//
// ProcessHandle is a value type, never a reference into a live debug session,
// and is safe to use as a map key.
type ProcessHandle struct {
	Pid          Pid_t
	Name         string
	IdentityTime time.Time
}

// NewProcessHandle creates a ProcessHandle from a PID, an executable name and an identity time.
func NewProcessHandle(pid Pid_t, name string, identityTime time.Time) ProcessHandle {
	return ProcessHandle{
		Pid:          pid,
		Name:         name,
		IdentityTime: identityTime,
	}
}
