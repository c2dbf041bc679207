package process

import (
	"time"

	"github.com/go-logr/logr"
	ps "github.com/shirou/gopsutil/v4/process"
)

// ListProcesses takes a point-in-time snapshot of all processes on the system
// and returns a read-only handle for each of them, keyed by pid.
//
// Entries for which a process handle cannot be opened (e.g. permission denied)
// are skipped rather than failing the whole enumeration. The returned handles
// are independent of any active debug session; any OS handle opened to probe
// accessibility is closed before this function returns.
func ListProcesses(log logr.Logger) map[Pid_t]ProcessHandle {
	return listProcesses(log)
}

// ParentPid scans a process snapshot for the given pid and returns the recorded
// parent process id, or UnknownPID if the process cannot be found.
func ParentPid(pid Pid_t) Pid_t {
	return parentPid(pid)
}

// StartTimeForProcess returns the creation time of a process as wall-clock time.
// This time is intended for display purposes; the zero time is returned when it
// cannot be determined.
func StartTimeForProcess(pid Pid_t) time.Time {
	osPid, osPidErr := PidT_ToUint32(pid)
	if osPidErr != nil {
		return time.Time{}
	}

	proc, procErr := ps.NewProcess(int32(osPid))
	if procErr != nil {
		return time.Time{}
	}

	createTimestamp, err := proc.CreateTime()
	if err != nil {
		return time.Time{}
	}

	return time.UnixMilli(createTimestamp)
}

// ProcessIdentityTime returns the raw start time for the process, used to detect
// PID reuse. The value may not match the wall clock time returned by
// StartTimeForProcess() on all OS platforms and should not be used for display,
// but is stable across system clock changes.
func ProcessIdentityTime(pid Pid_t) time.Time {
	osPid, osPidErr := PidT_ToUint32(pid)
	if osPidErr != nil {
		return time.Time{}
	}

	proc, procErr := ps.NewProcess(int32(osPid))
	if procErr != nil {
		return time.Time{}
	}

	return identityTimeForProcess(proc)
}

func init() {
	ps.EnableBootTimeCache(true)
}
