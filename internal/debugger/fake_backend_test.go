package debugger

import (
	"errors"

	"github.com/DylanHe215/edb-debugger/pkg/process"
)

// Well-known handle values used by the fake backend.
const (
	fakeSpawnProcessHandle HandleRef = 0x10
	fakeSpawnThreadHandle  HandleRef = 0x11
	fakeOpenProcessHandle  HandleRef = 0x20
	fakeImageFileHandle    HandleRef = 0x30
	fakeEventProcessHandle HandleRef = 0x31
	fakeEventThreadHandle  HandleRef = 0x32
	fakeModuleFileHandle   HandleRef = 0x40
)

type continueCall struct {
	pid    process.Pid_t
	tid    process.Pid_t
	status ContinueStatus
}

type privilegeCall struct {
	handle HandleRef
	enable bool
}

// fakeBackend is a scripted Backend: WaitForDebugEvent pops events queued via
// queue(), and every interaction with the OS is recorded for assertions.
type fakeBackend struct {
	pending []*RawDebugEvent
	waitErr error

	spawnErr          error
	attachErr         error
	openErr           error
	terminateFailures int

	spawnPid process.Pid_t
	spawnTid process.Pid_t

	continues  []continueCall
	closed     []HandleRef
	terminated []HandleRef
	attachedTo []process.Pid_t
	detached   []process.Pid_t
	killOnExit []bool
	privileges []privilegeCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		spawnPid: 100,
		spawnTid: 1000,
	}
}

func (b *fakeBackend) queue(events ...*RawDebugEvent) {
	b.pending = append(b.pending, events...)
}

func (b *fakeBackend) CreateProcess(path, cwd string, args []string) (*SpawnedProcess, error) {
	if b.spawnErr != nil {
		return nil, b.spawnErr
	}
	return &SpawnedProcess{
		Pid:     b.spawnPid,
		Tid:     b.spawnTid,
		Process: fakeSpawnProcessHandle,
		Thread:  fakeSpawnThreadHandle,
	}, nil
}

func (b *fakeBackend) AttachProcess(pid process.Pid_t) error {
	if b.attachErr != nil {
		return b.attachErr
	}
	b.attachedTo = append(b.attachedTo, pid)
	return nil
}

func (b *fakeBackend) DetachProcess(pid process.Pid_t) error {
	b.detached = append(b.detached, pid)
	return nil
}

func (b *fakeBackend) OpenProcess(pid process.Pid_t) (HandleRef, error) {
	if b.openErr != nil {
		return NilHandle, b.openErr
	}
	return fakeOpenProcessHandle, nil
}

func (b *fakeBackend) WaitForDebugEvent(msecs int) (*RawDebugEvent, error) {
	if b.waitErr != nil {
		return nil, b.waitErr
	}
	if len(b.pending) == 0 {
		return nil, nil
	}
	next := b.pending[0]
	b.pending = b.pending[1:]
	return next, nil
}

func (b *fakeBackend) ContinueDebugEvent(pid, tid process.Pid_t, status ContinueStatus) error {
	b.continues = append(b.continues, continueCall{pid: pid, tid: tid, status: status})
	return nil
}

func (b *fakeBackend) TerminateProcess(h HandleRef, exitCode uint32) error {
	if b.terminateFailures > 0 {
		b.terminateFailures--
		return errors.New("access denied")
	}
	b.terminated = append(b.terminated, h)
	return nil
}

func (b *fakeBackend) CloseHandle(h HandleRef) error {
	b.closed = append(b.closed, h)
	return nil
}

func (b *fakeBackend) SetKillOnExit(kill bool) error {
	b.killOnExit = append(b.killOnExit, kill)
	return nil
}

func (b *fakeBackend) AdjustDebugPrivilege(h HandleRef, enable bool) bool {
	b.privileges = append(b.privileges, privilegeCall{handle: h, enable: enable})
	return true
}

func (b *fakeBackend) CurrentProcess() HandleRef {
	return HandleRef(0x1)
}

var _ Backend = (*fakeBackend)(nil)

// Raw event constructors for scripting.

func rawProcessCreated(pid, tid process.Pid_t) *RawDebugEvent {
	return &RawDebugEvent{
		Code: CreateProcessDebugEvent,
		Pid:  pid,
		Tid:  tid,
		CreateProcess: &CreateProcessInfo{
			File:         fakeImageFileHandle,
			Process:      fakeEventProcessHandle,
			Thread:       fakeEventThreadHandle,
			ImageBase:    0x400000,
			StartAddress: 0x401000,
			TLSBase:      0x7ff00000,
		},
	}
}

func rawThreadCreated(pid, tid process.Pid_t, handle HandleRef) *RawDebugEvent {
	return &RawDebugEvent{
		Code: CreateThreadDebugEvent,
		Pid:  pid,
		Tid:  tid,
		CreateThread: &CreateThreadInfo{
			Thread:       handle,
			StartAddress: 0x402000,
			TLSBase:      0x7ff10000,
		},
	}
}

func rawThreadExited(pid, tid process.Pid_t) *RawDebugEvent {
	return &RawDebugEvent{
		Code: ExitThreadDebugEvent,
		Pid:  pid,
		Tid:  tid,
		Exit: &ExitInfo{ExitCode: 0},
	}
}

func rawModuleLoaded(pid, tid process.Pid_t) *RawDebugEvent {
	return &RawDebugEvent{
		Code: LoadDllDebugEvent,
		Pid:  pid,
		Tid:  tid,
		LoadModule: &LoadModuleInfo{
			File:      fakeModuleFileHandle,
			ImageBase: 0x10000000,
		},
	}
}

func rawProcessExited(pid, tid process.Pid_t, exitCode uint32) *RawDebugEvent {
	return &RawDebugEvent{
		Code: ExitProcessDebugEvent,
		Pid:  pid,
		Tid:  tid,
		Exit: &ExitInfo{ExitCode: exitCode},
	}
}

func rawException(pid, tid process.Pid_t, exceptionCode uint32) *RawDebugEvent {
	return &RawDebugEvent{
		Code: ExceptionDebugEvent,
		Pid:  pid,
		Tid:  tid,
		Exception: &ExceptionInfo{
			ExceptionCode: exceptionCode,
			Address:       0x401234,
			FirstChance:   true,
		},
	}
}

func rawDebugString(pid, tid process.Pid_t) *RawDebugEvent {
	return &RawDebugEvent{
		Code: OutputDebugStringEvent,
		Pid:  pid,
		Tid:  tid,
	}
}
