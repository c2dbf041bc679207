//go:build windows

package debugger

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/DylanHe215/edb-debugger/pkg/process"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	// Debug-loop entry points not surfaced by x/sys/windows.
	procWaitForDebugEvent         = modkernel32.NewProc("WaitForDebugEvent")
	procContinueDebugEvent        = modkernel32.NewProc("ContinueDebugEvent")
	procDebugActiveProcess        = modkernel32.NewProc("DebugActiveProcess")
	procDebugActiveProcessStop    = modkernel32.NewProc("DebugActiveProcessStop")
	procDebugSetProcessKillOnExit = modkernel32.NewProc("DebugSetProcessKillOnExit")
)

const waitInfinite = 0xFFFFFFFF // INFINITE

// winBackend drives the Win32 debug facility.
type winBackend struct{}

func newOSBackend() Backend {
	return &winBackend{}
}

// Union payloads of the DEBUG_EVENT structure. Field widths use uintptr and
// windows.Handle so the layouts are correct on both 32- and 64-bit Windows.

type exceptionRecord struct {
	ExceptionCode    uint32
	ExceptionFlags   uint32
	ExceptionRecord  uintptr
	ExceptionAddress uintptr
	NumberParameters uint32
	Information      [15]uintptr
}

type exceptionDebugInfo struct {
	ExceptionRecord exceptionRecord
	FirstChance     uint32
}

type createThreadDebugInfo struct {
	Thread          windows.Handle
	ThreadLocalBase uintptr
	StartAddress    uintptr
}

type createProcessDebugInfo struct {
	File                windows.Handle
	Process             windows.Handle
	Thread              windows.Handle
	BaseOfImage         uintptr
	DebugInfoFileOffset uint32
	DebugInfoSize       uint32
	ThreadLocalBase     uintptr
	StartAddress        uintptr
	ImageName           uintptr
	Unicode             uint16
}

type exitDebugInfo struct {
	ExitCode uint32
}

type loadDllDebugInfo struct {
	File                windows.Handle
	BaseOfDll           uintptr
	DebugInfoFileOffset uint32
	DebugInfoSize       uint32
	ImageName           uintptr
	Unicode             uint16
}

func (b *winBackend) WaitForDebugEvent(msecs int) (*RawDebugEvent, error) {
	// A timeout of zero means wait indefinitely. Nonzero timeouts are passed
	// through to the OS without an enforced deadline across partial waits.
	timeout := uint32(waitInfinite)
	if msecs > 0 {
		timeout = uint32(msecs)
	}

	var de winDebugEvent
	r1, _, callErr := procWaitForDebugEvent.Call(uintptr(unsafe.Pointer(&de)), uintptr(timeout))
	if r1 == 0 {
		if errno, isErrno := callErr.(windows.Errno); isErrno && errno == windows.ERROR_SEM_TIMEOUT {
			return nil, nil
		}
		return nil, callErr
	}

	raw := &RawDebugEvent{
		Code: DebugEventCode(de.code),
		Pid:  process.Uint32_ToPidT(de.processID),
		Tid:  process.Uint32_ToPidT(de.threadID),
	}

	payload := unsafe.Pointer(&de.u[0])
	switch raw.Code {
	case ExceptionDebugEvent:
		info := (*exceptionDebugInfo)(payload)
		raw.Exception = &ExceptionInfo{
			ExceptionCode: info.ExceptionRecord.ExceptionCode,
			Address:       uint64(info.ExceptionRecord.ExceptionAddress),
			FirstChance:   info.FirstChance != 0,
		}
	case CreateThreadDebugEvent:
		info := (*createThreadDebugInfo)(payload)
		raw.CreateThread = &CreateThreadInfo{
			Thread:       HandleRef(info.Thread),
			StartAddress: uint64(info.StartAddress),
			TLSBase:      uint64(info.ThreadLocalBase),
		}
	case CreateProcessDebugEvent:
		info := (*createProcessDebugInfo)(payload)
		raw.CreateProcess = &CreateProcessInfo{
			File:         HandleRef(info.File),
			Process:      HandleRef(info.Process),
			Thread:       HandleRef(info.Thread),
			ImageBase:    uint64(info.BaseOfImage),
			StartAddress: uint64(info.StartAddress),
			TLSBase:      uint64(info.ThreadLocalBase),
		}
	case ExitThreadDebugEvent, ExitProcessDebugEvent:
		info := (*exitDebugInfo)(payload)
		raw.Exit = &ExitInfo{ExitCode: info.ExitCode}
	case LoadDllDebugEvent:
		info := (*loadDllDebugInfo)(payload)
		raw.LoadModule = &LoadModuleInfo{
			File:      HandleRef(info.File),
			ImageBase: uint64(info.BaseOfDll),
		}
	}

	return raw, nil
}

func (b *winBackend) ContinueDebugEvent(pid, tid process.Pid_t, status ContinueStatus) error {
	osPid, err := process.PidT_ToUint32(pid)
	if err != nil {
		return err
	}
	osTid, err := process.PidT_ToUint32(tid)
	if err != nil {
		return err
	}

	r1, _, callErr := procContinueDebugEvent.Call(uintptr(osPid), uintptr(osTid), uintptr(status))
	if r1 == 0 {
		return callErr
	}
	return nil
}

func (b *winBackend) CreateProcess(path, cwd string, args []string) (*SpawnedProcess, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	cwdPtr, err := windows.UTF16PtrFromString(cwd)
	if err != nil {
		return nil, err
	}

	// argv[0] is the quoted target path; the remaining arguments are passed
	// through verbatim.
	commandLine := `"` + path + `"`
	for _, arg := range args {
		commandLine += " " + arg
	}
	commandLinePtr, err := windows.UTF16PtrFromString(commandLine)
	if err != nil {
		return nil, err
	}

	var startupInfo windows.StartupInfo
	startupInfo.Cb = uint32(unsafe.Sizeof(startupInfo))
	var procInfo windows.ProcessInformation

	const creationFlags = windows.DEBUG_PROCESS |
		windows.DEBUG_ONLY_THIS_PROCESS |
		windows.CREATE_UNICODE_ENVIRONMENT |
		windows.CREATE_NEW_CONSOLE

	err = windows.CreateProcess(
		pathPtr,
		commandLinePtr,
		nil,   // default security attributes
		nil,   // default thread security too
		false, // inherit handles
		creationFlags,
		nil, // inherit our environment
		cwdPtr,
		&startupInfo,
		&procInfo,
	)
	if err != nil {
		return nil, err
	}

	return &SpawnedProcess{
		Pid:     process.Uint32_ToPidT(procInfo.ProcessId),
		Tid:     process.Uint32_ToPidT(procInfo.ThreadId),
		Process: HandleRef(procInfo.Process),
		Thread:  HandleRef(procInfo.Thread),
	}, nil
}

func (b *winBackend) AttachProcess(pid process.Pid_t) error {
	osPid, err := process.PidT_ToUint32(pid)
	if err != nil {
		return err
	}

	r1, _, callErr := procDebugActiveProcess.Call(uintptr(osPid))
	if r1 == 0 {
		return callErr
	}
	return nil
}

func (b *winBackend) DetachProcess(pid process.Pid_t) error {
	osPid, err := process.PidT_ToUint32(pid)
	if err != nil {
		return err
	}

	r1, _, callErr := procDebugActiveProcessStop.Call(uintptr(osPid))
	if r1 == 0 {
		return callErr
	}
	return nil
}

func (b *winBackend) OpenProcess(pid process.Pid_t) (HandleRef, error) {
	osPid, err := process.PidT_ToUint32(pid)
	if err != nil {
		return NilHandle, err
	}

	h, openErr := windows.OpenProcess(windows.PROCESS_ALL_ACCESS, false, osPid)
	if openErr != nil {
		return NilHandle, openErr
	}
	return HandleRef(h), nil
}

func (b *winBackend) TerminateProcess(h HandleRef, exitCode uint32) error {
	return windows.TerminateProcess(windows.Handle(h), exitCode)
}

func (b *winBackend) CloseHandle(h HandleRef) error {
	if h == NilHandle {
		return nil
	}
	return windows.CloseHandle(windows.Handle(h))
}

func (b *winBackend) SetKillOnExit(kill bool) error {
	var arg uintptr
	if kill {
		arg = 1
	}
	r1, _, callErr := procDebugSetProcessKillOnExit.Call(arg)
	if r1 == 0 {
		return callErr
	}
	return nil
}

func (b *winBackend) AdjustDebugPrivilege(h HandleRef, enable bool) bool {
	return adjustDebugPrivilege(windows.Handle(h), enable)
}

func (b *winBackend) CurrentProcess() HandleRef {
	return HandleRef(windows.CurrentProcess())
}

var _ Backend = (*winBackend)(nil)
