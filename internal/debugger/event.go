package debugger

import (
	"github.com/DylanHe215/edb-debugger/pkg/process"
)

// DebugEventCode identifies a raw OS debug notification. The values match the
// Win32 DEBUG_EVENT codes; backends for other systems map onto the same set.
type DebugEventCode uint32

const (
	ExceptionDebugEvent     DebugEventCode = 1
	CreateThreadDebugEvent  DebugEventCode = 2
	CreateProcessDebugEvent DebugEventCode = 3
	ExitThreadDebugEvent    DebugEventCode = 4
	ExitProcessDebugEvent   DebugEventCode = 5
	LoadDllDebugEvent       DebugEventCode = 6
	UnloadDllDebugEvent     DebugEventCode = 7
	OutputDebugStringEvent  DebugEventCode = 8
	RipEvent                DebugEventCode = 9
)

// RawDebugEvent is one notification as delivered by the OS wait primitive.
// Exactly one of the payload pointers is set, depending on Code.
type RawDebugEvent struct {
	Code DebugEventCode
	Pid  process.Pid_t
	Tid  process.Pid_t

	CreateProcess *CreateProcessInfo
	CreateThread  *CreateThreadInfo
	LoadModule    *LoadModuleInfo
	Exit          *ExitInfo
	Exception     *ExceptionInfo
}

// CreateProcessInfo carries the payload of a process-creation notification.
// File is a transient handle to the main image and must be closed during
// translation; Process and Thread are owned by the session once adopted.
type CreateProcessInfo struct {
	File         HandleRef
	Process      HandleRef
	Thread       HandleRef
	ImageBase    uint64
	StartAddress uint64
	TLSBase      uint64
}

type CreateThreadInfo struct {
	Thread       HandleRef
	StartAddress uint64
	TLSBase      uint64
}

// LoadModuleInfo carries the payload of a module-load notification.
// File is transient and closed during translation.
type LoadModuleInfo struct {
	File      HandleRef
	ImageBase uint64
}

type ExitInfo struct {
	ExitCode uint32
}

// ExceptionInfo classifies an exception notification. The payload is not
// interpreted beyond this; downstream consumers decide what the code means.
type ExceptionInfo struct {
	ExceptionCode uint32
	Address       uint64
	FirstChance   bool
}

// EventKind is the normalized classification of a debug event.
type EventKind int

const (
	EventOther EventKind = iota
	EventProcessCreated
	EventThreadCreated
	EventThreadExited
	EventModuleLoaded
	EventProcessExited
	EventException
)

func (k EventKind) String() string {
	switch k {
	case EventProcessCreated:
		return "process-created"
	case EventThreadCreated:
		return "thread-created"
	case EventThreadExited:
		return "thread-exited"
	case EventModuleLoaded:
		return "module-loaded"
	case EventProcessExited:
		return "process-exited"
	case EventException:
		return "exception"
	default:
		return "other"
	}
}

// Event is the immutable value surfaced to the caller of WaitDebugEvent.
// At most one Event is in flight between the engine and its caller at a time.
type Event struct {
	Kind EventKind
	Pid  process.Pid_t
	Tid  process.Pid_t
	Raw  RawDebugEvent
}

// classify maps a raw notification onto its normalized kind.
func classify(raw *RawDebugEvent) EventKind {
	switch raw.Code {
	case CreateProcessDebugEvent:
		return EventProcessCreated
	case CreateThreadDebugEvent:
		return EventThreadCreated
	case ExitThreadDebugEvent:
		return EventThreadExited
	case LoadDllDebugEvent:
		return EventModuleLoaded
	case ExitProcessDebugEvent:
		return EventProcessExited
	case ExceptionDebugEvent:
		return EventException
	default:
		return EventOther
	}
}

// synthesizeThreadCreate builds a thread-creation notification from a
// process-creation one, so the initial thread of a new process is registered
// through the same code path as any other thread.
func synthesizeThreadCreate(raw *RawDebugEvent) *RawDebugEvent {
	cp := raw.CreateProcess
	return &RawDebugEvent{
		Code: CreateThreadDebugEvent,
		Pid:  raw.Pid,
		Tid:  raw.Tid,
		CreateThread: &CreateThreadInfo{
			Thread:       cp.Thread,
			StartAddress: cp.StartAddress,
			TLSBase:      cp.TLSBase,
		},
	}
}
