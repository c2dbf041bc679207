//go:build !windows

package debugger

import (
	"github.com/DylanHe215/edb-debugger/pkg/process"
)

// unsupportedBackend stands in on platforms without an OS debug backend.
// Session-creating operations fail with ErrNotSupported; everything else is a
// harmless no-op so that lifecycle code stays exercisable.
type unsupportedBackend struct{}

func newOSBackend() Backend {
	return &unsupportedBackend{}
}

func (b *unsupportedBackend) CreateProcess(path, cwd string, args []string) (*SpawnedProcess, error) {
	return nil, ErrNotSupported
}

func (b *unsupportedBackend) AttachProcess(pid process.Pid_t) error {
	return ErrNotSupported
}

func (b *unsupportedBackend) DetachProcess(pid process.Pid_t) error {
	return ErrNotSupported
}

func (b *unsupportedBackend) OpenProcess(pid process.Pid_t) (HandleRef, error) {
	return NilHandle, ErrNotSupported
}

func (b *unsupportedBackend) WaitForDebugEvent(msecs int) (*RawDebugEvent, error) {
	return nil, ErrNotSupported
}

func (b *unsupportedBackend) ContinueDebugEvent(pid, tid process.Pid_t, status ContinueStatus) error {
	return ErrNotSupported
}

func (b *unsupportedBackend) TerminateProcess(h HandleRef, exitCode uint32) error {
	return ErrNotSupported
}

func (b *unsupportedBackend) CloseHandle(h HandleRef) error {
	return nil
}

func (b *unsupportedBackend) SetKillOnExit(kill bool) error {
	return nil
}

func (b *unsupportedBackend) AdjustDebugPrivilege(h HandleRef, enable bool) bool {
	return false
}

func (b *unsupportedBackend) CurrentProcess() HandleRef {
	return NilHandle
}

var _ Backend = (*unsupportedBackend)(nil)
