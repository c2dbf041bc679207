//go:build windows

package process

import (
	"unsafe"

	"github.com/go-logr/logr"
	"golang.org/x/sys/windows"
)

func listProcesses(log logr.Logger) map[Pid_t]ProcessHandle {
	ret := map[Pid_t]ProcessHandle{}

	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		log.Error(err, "could not take a process snapshot")
		return ret
	}
	// nolint:errcheck
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Process32First(snapshot, &entry); err != nil {
		log.Error(err, "could not read the first process snapshot entry")
		return ret
	}

	for {
		pid := Uint32_ToPidT(entry.ProcessID)

		// Skip entries we would not be able to open anyway (e.g. protected system processes).
		h, openErr := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, entry.ProcessID)
		if openErr == nil {
			// nolint:errcheck
			windows.CloseHandle(h)
			ret[pid] = NewProcessHandle(pid, windows.UTF16ToString(entry.ExeFile[:]), ProcessIdentityTime(pid))
		} else {
			log.V(2).Info("skipping unopenable process", "PID", pid, "error", openErr.Error())
		}

		entry.Size = uint32(unsafe.Sizeof(entry))
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}

	return ret
}

func parentPid(pid Pid_t) Pid_t {
	osPid, err := PidT_ToUint32(pid)
	if err != nil {
		return UnknownPID
	}

	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, osPid)
	if err != nil {
		return UnknownPID
	}
	// nolint:errcheck
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	for err := windows.Process32First(snapshot, &entry); err == nil; err = windows.Process32Next(snapshot, &entry) {
		if entry.ProcessID == osPid {
			return Uint32_ToPidT(entry.ParentProcessID)
		}
		entry.Size = uint32(unsafe.Sizeof(entry))
	}

	return UnknownPID
}
