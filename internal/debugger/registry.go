package debugger

import (
	"sync"

	"github.com/DylanHe215/edb-debugger/pkg/process"
)

// ownedHandle wraps a raw OS handle with release-exactly-once semantics.
// Every handle embedded in a process or thread descriptor is released at
// descriptor destruction, never duplicated or leaked across retries.
type ownedHandle struct {
	backend Backend
	ref     HandleRef
	once    sync.Once
}

func newOwnedHandle(backend Backend, ref HandleRef) *ownedHandle {
	return &ownedHandle{backend: backend, ref: ref}
}

func (h *ownedHandle) Ref() HandleRef {
	if h == nil {
		return NilHandle
	}
	return h.ref
}

func (h *ownedHandle) Close() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		if h.ref != NilHandle {
			// nolint:errcheck
			h.backend.CloseHandle(h.ref)
		}
	})
}

// Process is the descriptor of the debugged process. It is exclusively owned
// by the active session and destroyed on detach, kill or process exit.
type Process struct {
	pid       process.Pid_t
	handle    *ownedHandle
	lastEvent *RawDebugEvent
}

func newProcess(backend Backend, pid process.Pid_t, ref HandleRef) *Process {
	return &Process{
		pid:    pid,
		handle: newOwnedHandle(backend, ref),
	}
}

func (p *Process) Pid() process.Pid_t {
	return p.pid
}

func (p *Process) Handle() HandleRef {
	return p.handle.Ref()
}

// LastEvent returns the most recent raw notification observed for this
// process, which a later resume call references.
func (p *Process) LastEvent() *RawDebugEvent {
	return p.lastEvent
}

func (p *Process) close() {
	p.handle.Close()
}

// Thread is the descriptor of one execution thread of the debugged process.
// Its lifetime is strictly bounded by the enclosing session.
type Thread struct {
	tid          process.Pid_t
	handle       *ownedHandle
	startAddress uint64
	tlsBase      uint64
}

func newThread(backend Backend, tid process.Pid_t, info *CreateThreadInfo) *Thread {
	t := &Thread{tid: tid}
	if info != nil {
		t.handle = newOwnedHandle(backend, info.Thread)
		t.startAddress = info.StartAddress
		t.tlsBase = info.TLSBase
	} else {
		t.handle = newOwnedHandle(backend, NilHandle)
	}
	return t
}

func (t *Thread) Tid() process.Pid_t {
	return t.tid
}

func (t *Thread) Handle() HandleRef {
	return t.handle.Ref()
}

func (t *Thread) StartAddress() uint64 {
	return t.startAddress
}

func (t *Thread) TLSBase() uint64 {
	return t.tlsBase
}

func (t *Thread) close() {
	t.handle.Close()
}
