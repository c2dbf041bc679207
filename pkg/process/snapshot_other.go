//go:build !windows

package process

import (
	"github.com/go-logr/logr"
	gops "github.com/shirou/gopsutil/v4/process"
	"github.com/tklauser/ps"
)

func listProcesses(log logr.Logger) map[Pid_t]ProcessHandle {
	ret := map[Pid_t]ProcessHandle{}

	procs, err := ps.Processes()
	if err != nil {
		log.Error(err, "could not take a process snapshot")
		return ret
	}

	for _, proc := range procs {
		pid, pidErr := Int64_ToPidT(int64(proc.PID()))
		if pidErr != nil {
			continue
		}

		// Skip entries that are no longer accessible (e.g. the process exited
		// between the snapshot and now, or belongs to another user and its
		// details cannot be read).
		osPid, _ := PidT_ToUint32(pid)
		if _, probeErr := gops.NewProcess(int32(osPid)); probeErr != nil {
			log.V(2).Info("skipping inaccessible process", "PID", pid, "error", probeErr.Error())
			continue
		}

		ret[pid] = NewProcessHandle(pid, proc.Command(), ProcessIdentityTime(pid))
	}

	return ret
}

func parentPid(pid Pid_t) Pid_t {
	osPid, err := PidT_ToInt(pid)
	if err != nil {
		return UnknownPID
	}

	proc, findErr := ps.FindProcess(osPid)
	if findErr != nil {
		return UnknownPID
	}

	parent, parentErr := Int64_ToPidT(int64(proc.PPID()))
	if parentErr != nil {
		return UnknownPID
	}

	return parent
}
