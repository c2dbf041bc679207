package debugger

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/DylanHe215/edb-debugger/pkg/maps"
	"github.com/DylanHe215/edb-debugger/pkg/process"
	"github.com/DylanHe215/edb-debugger/pkg/resiliency"
)

// State is an architecture register snapshot. Implementations are owned by the
// register/state collaborator; this engine only constructs them on request.
type State interface{}

// StateFactory builds register snapshots for the active architecture.
type StateFactory func() State

const killTimeout = 2 * time.Second

// Config carries the collaborators of a Debugger. The zero value is usable:
// a nil Backend selects the OS backend and a missing Logger discards output.
type Config struct {
	Backend Backend
	Logger  logr.Logger

	// ClearInstrumentation is invoked during Detach, before the final resume,
	// so the breakpoint/instrumentation collaborator can restore the target.
	ClearInstrumentation func()

	// NewState builds architecture-register snapshots on request.
	NewState StateFactory
}

// Debugger is the debug-session engine. It establishes OS-level control over a
// single target process, translates raw debug notifications into normalized
// events, and maintains the live set of threads of the debugged process.
//
// A Debugger manages at most one session at a time, from exactly one logical
// thread of control: calls either execute synchronously or block inside the OS
// wait primitive, so no locking is needed around the session state.
type Debugger struct {
	backend Backend
	log     logr.Logger
	arch    Arch

	clearInstrumentation func()
	newState             StateFactory

	sessionID    uuid.UUID
	proc         *Process
	threads      map[process.Pid_t]*Thread
	activeThread process.Pid_t
}

// New builds a Debugger. Construction enables the OS debug capability on the
// current process (best effort; failure only narrows which processes can be
// attached to) and makes sure debuggees are not killed when the debugger exits.
func New(cfg Config) *Debugger {
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	backend := cfg.Backend
	if backend == nil {
		backend = newOSBackend()
	}

	d := &Debugger{
		backend:              backend,
		log:                  log.WithName("debugger"),
		arch:                 hostArch(),
		clearInstrumentation: cfg.ClearInstrumentation,
		newState:             cfg.NewState,
		threads:              map[process.Pid_t]*Thread{},
	}

	if err := d.backend.SetKillOnExit(false); err != nil {
		d.log.V(1).Info("could not configure debuggee survival on debugger exit", "error", err.Error())
	}

	if !d.backend.AdjustDebugPrivilege(d.backend.CurrentProcess(), true) {
		d.log.V(1).Info("debug privilege not available; attaching is limited to same-user processes")
	}

	return d
}

// Close detaches from any active session and drops the debug privilege.
func (d *Debugger) Close() {
	// nolint:errcheck
	d.Detach()
	d.backend.AdjustDebugPrivilege(d.backend.CurrentProcess(), false)
}

// Attached reports whether a session is active.
func (d *Debugger) Attached() bool {
	return d.proc != nil
}

// Process returns the descriptor of the debugged process, or nil when no
// session is active.
func (d *Debugger) Process() *Process {
	return d.proc
}

// SessionID identifies the current session in logs; empty when idle.
func (d *Debugger) SessionID() string {
	if d.proc == nil {
		return ""
	}
	return d.sessionID.String()
}

// ActiveThread returns the thread that reported the most recent debug event.
func (d *Debugger) ActiveThread() process.Pid_t {
	return d.activeThread
}

// Thread looks up a live thread descriptor by id.
func (d *Debugger) Thread(tid process.Pid_t) (*Thread, bool) {
	t, found := d.threads[tid]
	return t, found
}

// Threads returns the ids of all live threads of the debugged process.
func (d *Debugger) Threads() []process.Pid_t {
	return maps.Keys(d.threads)
}

// ThreadCount returns the number of live threads in the registry.
func (d *Debugger) ThreadCount() int {
	return len(d.threads)
}

// CreateState builds a register snapshot via the collaborator-supplied
// factory, or returns nil when none is installed.
func (d *Debugger) CreateState() State {
	if d.newState == nil {
		return nil
	}
	return d.newState()
}

func (d *Debugger) CPU() string                { return d.arch.CPU() }
func (d *Debugger) PageSize() int              { return d.arch.PageSize() }
func (d *Debugger) PointerSize() int           { return d.arch.PointerSize() }
func (d *Debugger) StackPointer() string       { return d.arch.StackPointer() }
func (d *Debugger) FramePointer() string       { return d.arch.FramePointer() }
func (d *Debugger) InstructionPointer() string { return d.arch.InstructionPointer() }
func (d *Debugger) HasFeature(name string) bool {
	return d.arch.HasFeature(name)
}
func (d *Debugger) Registers() []string { return d.arch.Registers() }
func (d *Debugger) HasRegister(name string) bool {
	return d.arch.HasRegister(name)
}

// Spawn creates the target as a newly debugged process in a new console,
// inheriting no handles. Any active session is detached first. The initial
// thread is not registered here; it arrives via the first debug event.
func (d *Debugger) Spawn(path, cwd string, args []string) error {
	if path == "" {
		return fmt.Errorf("cannot spawn: no target path given")
	}

	// nolint:errcheck
	d.Detach()

	if cwd == "" {
		// Default to the target's directory.
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		cwd = filepath.Dir(abs)
	}

	spawned, err := d.backend.CreateProcess(path, cwd, args)
	if err != nil {
		return fmt.Errorf("could not spawn '%s' under debug control: %w", path, err)
	}

	d.activeThread = spawned.Tid
	// The initial thread handle is not needed; the thread registers itself
	// through the first debug event.
	// nolint:errcheck
	d.backend.CloseHandle(spawned.Thread)
	// The child does not inherit our debug capability.
	d.backend.AdjustDebugPrivilege(spawned.Process, false)

	d.proc = newProcess(d.backend, spawned.Pid, spawned.Process)
	d.sessionID = uuid.New()

	d.log.Info("spawned process under debug control", "PID", spawned.Pid, "path", path, "session", d.sessionID)
	return nil
}

// Attach requests OS-level debug attachment to a running process. Any active
// session is detached first. On failure the engine stays idle and the call can
// safely be retried.
func (d *Debugger) Attach(pid process.Pid_t) error {
	// nolint:errcheck
	d.Detach()

	if err := d.backend.AttachProcess(pid); err != nil {
		return fmt.Errorf("could not attach to process %d: %w", pid, err)
	}

	handle, openErr := d.backend.OpenProcess(pid)
	if openErr != nil {
		// Attachment succeeded, so keep the session; the descriptor just
		// carries no handle of its own.
		d.log.V(1).Info("could not open a handle to the attached process", "PID", pid, "error", openErr.Error())
		handle = NilHandle
	}

	d.proc = newProcess(d.backend, pid, handle)
	d.sessionID = uuid.New()

	d.log.Info("attached to process", "PID", pid, "session", d.sessionID)
	return nil
}

// Detach ends the active session, leaving the target running. Instrumentation
// installed by collaborators is cleared first, and one final resume is issued
// so the OS does not leave the target's threads frozen. Detach is idempotent
// and a no-op when idle.
func (d *Debugger) Detach() error {
	if d.proc == nil {
		return nil
	}

	if d.clearInstrumentation != nil {
		d.clearInstrumentation()
	}

	// Make sure the pending event, if any, is acknowledged so the target is
	// not left frozen after we are gone.
	// nolint:errcheck
	d.backend.ContinueDebugEvent(d.proc.Pid(), d.activeThread, ContinueHandled)

	if err := d.backend.DetachProcess(d.proc.Pid()); err != nil {
		d.log.V(1).Info("OS detach reported an error", "PID", d.proc.Pid(), "error", err.Error())
	}

	d.log.Info("detached", "PID", d.proc.Pid(), "session", d.sessionID)
	d.dropSession()
	return nil
}

// Kill forcibly terminates the target process and detaches. No-op when idle.
func (d *Debugger) Kill() {
	if d.proc == nil {
		return
	}

	// Termination occasionally fails transiently (e.g. access denied while the
	// target is mid-event), so retry briefly.
	handle := d.proc.Handle()
	err := resiliency.RetryExponentialWithTimeout(context.Background(), killTimeout, func() error {
		return d.backend.TerminateProcess(handle, terminatedExitCode)
	})
	if err != nil {
		d.log.Error(err, "could not terminate the debuggee", "PID", d.proc.Pid())
	}

	// nolint:errcheck
	d.Detach()
}

// The exit code reported for forcibly terminated targets, DWORD(-1).
const terminatedExitCode = ^uint32(0)

// WaitDebugEvent blocks on the OS wait primitive for up to msecs milliseconds
// (0 means wait indefinitely) and dispatches raw notifications as they arrive.
// Thread lifecycle and module-load notifications are acknowledged internally
// and the wait continues; only exceptions and process exit are surfaced.
//
// Returns nil when idle, when the wait times out, or when the OS wait
// primitive fails; a failed wait does not tear the session down — callers
// decide whether to Detach.
//
// While the returned event is pending, every thread of the target is frozen by
// the OS; the caller acknowledges it with Resume.
func (d *Debugger) WaitDebugEvent(msecs int) *Event {
	if d.proc == nil {
		return nil
	}

	for {
		raw, err := d.backend.WaitForDebugEvent(msecs)
		if err != nil {
			d.log.V(1).Info("debug event wait failed", "error", err.Error())
			return nil
		}
		if raw == nil {
			// Timed out without a notification.
			return nil
		}

		if raw.Pid != d.proc.Pid() {
			d.log.Info("debug event for unexpected process", "PID", raw.Pid, "expected", d.proc.Pid())
		}

		d.activeThread = raw.Tid
		surface := false

		switch classify(raw) {
		case EventThreadCreated:
			d.insertThread(raw.Tid, raw.CreateThread)

		case EventThreadExited:
			d.removeThread(raw.Tid)

		case EventProcessCreated:
			// The image file handle is transient; release it immediately.
			// nolint:errcheck
			d.backend.CloseHandle(raw.CreateProcess.File)

			// Adopt the process handle delivered with the notification.
			d.proc.close()
			d.proc = newProcess(d.backend, raw.Pid, raw.CreateProcess.Process)

			// Register the initial thread through the regular path.
			synthesized := synthesizeThreadCreate(raw)
			d.insertThread(synthesized.Tid, synthesized.CreateThread)

		case EventModuleLoaded:
			// nolint:errcheck
			d.backend.CloseHandle(raw.LoadModule.File)

		case EventProcessExited:
			// The OS still needs one final acknowledgment for this specific
			// notification before we discard the session, or it will leave
			// the debug session dangling.
			// nolint:errcheck
			d.backend.ContinueDebugEvent(raw.Pid, raw.Tid, ContinueHandled)
			d.log.Info("debuggee exited", "PID", raw.Pid, "exitCode", raw.Exit.ExitCode, "session", d.sessionID)
			d.dropSession()
			surface = true

		case EventException:
			surface = true

		default:
			// Output-debug-string and RIP notifications are swallowed.
		}

		if d.proc != nil {
			d.proc.lastEvent = raw
		}

		if surface {
			return &Event{
				Kind: classify(raw),
				Pid:  raw.Pid,
				Tid:  raw.Tid,
				Raw:  *raw,
			}
		}

		// Not surfaced: acknowledge and keep waiting within the same call.
		// nolint:errcheck
		d.backend.ContinueDebugEvent(raw.Pid, raw.Tid, ContinueNotHandled)
	}
}

// Resume acknowledges the event currently pending between the engine and its
// caller, un-suspending the target's threads.
func (d *Debugger) Resume(status ContinueStatus) error {
	if d.proc == nil {
		return ErrNoSession
	}

	last := d.proc.LastEvent()
	if last == nil {
		return nil
	}

	return d.backend.ContinueDebugEvent(last.Pid, last.Tid, status)
}

func (d *Debugger) insertThread(tid process.Pid_t, info *CreateThreadInfo) {
	if existing, found := d.threads[tid]; found {
		existing.close()
	}
	d.threads[tid] = newThread(d.backend, tid, info)
	d.log.V(2).Info("thread registered", "TID", tid)
}

func (d *Debugger) removeThread(tid process.Pid_t) {
	if t, found := d.threads[tid]; found {
		t.close()
		delete(d.threads, tid)
		d.log.V(2).Info("thread removed", "TID", tid)
	}
}

func (d *Debugger) dropSession() {
	for _, t := range d.threads {
		t.close()
	}
	d.threads = map[process.Pid_t]*Thread{}

	d.proc.close()
	d.proc = nil
	d.activeThread = 0
}
