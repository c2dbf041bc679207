package debugger

import (
	"errors"

	"github.com/DylanHe215/edb-debugger/pkg/process"
)

// HandleRef is a raw OS handle value. Ownership is tracked separately by the
// descriptor holding it (see ownedHandle); a HandleRef by itself confers none.
type HandleRef uintptr

// NilHandle is the zero HandleRef; closing it is a no-op.
const NilHandle HandleRef = 0

// ContinueStatus tells the OS how to resume the target after a debug event.
// The values are the Win32 continuation codes.
type ContinueStatus uint32

const (
	// ContinueHandled resumes the target as if the event was dealt with (DBG_CONTINUE).
	ContinueHandled ContinueStatus = 0x00010002
	// ContinueNotHandled resumes the target letting the exception propagate (DBG_EXCEPTION_NOT_HANDLED).
	ContinueNotHandled ContinueStatus = 0x80010001
)

// SpawnedProcess describes a process freshly created under debug control.
// The Thread handle is not retained by the session; the initial thread is
// registered via the first debug event instead.
type SpawnedProcess struct {
	Pid     process.Pid_t
	Tid     process.Pid_t
	Process HandleRef
	Thread  HandleRef
}

var (
	// ErrNotSupported is returned by session-creating operations on platforms
	// without an OS debug backend.
	ErrNotSupported = errors.New("debug backend not supported on this platform")

	// ErrNoSession is returned by operations that require an active session.
	ErrNoSession = errors.New("no active debug session")
)

// Backend is the OS debug facility the session controller drives. Exactly one
// implementation talks to the real OS; tests substitute a scripted fake.
type Backend interface {
	// CreateProcess spawns the target under debug control in a new console,
	// inheriting no handles. args become the command line after the quoted
	// target path (argument zero).
	CreateProcess(path, cwd string, args []string) (*SpawnedProcess, error)

	// AttachProcess requests OS-level debug attachment to a running process.
	AttachProcess(pid process.Pid_t) error

	// DetachProcess ends OS-level debug attachment, leaving the target running.
	DetachProcess(pid process.Pid_t) error

	// OpenProcess opens an owned handle to the given process.
	OpenProcess(pid process.Pid_t) (HandleRef, error)

	// WaitForDebugEvent blocks until the OS delivers the next debug
	// notification. msecs == 0 waits indefinitely. Returns (nil, nil) when the
	// wait timed out without a notification.
	WaitForDebugEvent(msecs int) (*RawDebugEvent, error)

	// ContinueDebugEvent acknowledges the pending notification reported by the
	// given thread, un-suspending the target.
	ContinueDebugEvent(pid, tid process.Pid_t, status ContinueStatus) error

	// TerminateProcess forcibly ends the process behind the handle.
	TerminateProcess(h HandleRef, exitCode uint32) error

	// CloseHandle releases a raw OS handle.
	CloseHandle(h HandleRef) error

	// SetKillOnExit controls whether debuggees are killed when the debugger
	// process exits.
	SetKillOnExit(kill bool) error

	// AdjustDebugPrivilege enables or disables the OS debug capability on the
	// security token of the process behind the handle. Failure is non-fatal
	// and reported as false; lack of the capability only narrows which
	// processes can be attached to.
	AdjustDebugPrivilege(h HandleRef, enable bool) bool

	// CurrentProcess returns a pseudo-handle for the calling process, suitable
	// for AdjustDebugPrivilege. The pseudo-handle needs no release.
	CurrentProcess() HandleRef
}
