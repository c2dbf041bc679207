package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/DylanHe215/edb-debugger/internal/debugger"
)

// waitForever makes the event wait block until the next notification.
const waitForever = 0

// traceEvents consumes debug events until the session ends or the wait
// primitive fails. Exceptions are printed and passed back to the target
// unhandled, so the target's own handlers run as they would outside the
// debugger. Returns the target's exit code when the process exited.
func traceEvents(ctx context.Context, dbg *debugger.Debugger, log logr.Logger) (uint32, error) {
	for dbg.Attached() {
		ev := dbg.WaitDebugEvent(waitForever)
		if ev == nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			if !dbg.Attached() {
				return 0, nil
			}
			return 0, errors.New("debug event wait failed")
		}

		switch ev.Kind {
		case debugger.EventException:
			exc := ev.Raw.Exception
			log.Info("exception in debuggee",
				"PID", ev.Pid,
				"TID", ev.Tid,
				"Code", fmt.Sprintf("0x%08x", exc.ExceptionCode),
				"Address", fmt.Sprintf("0x%x", exc.Address),
				"FirstChance", exc.FirstChance,
			)
			if resumeErr := dbg.Resume(debugger.ContinueNotHandled); resumeErr != nil {
				return 0, resumeErr
			}

		case debugger.EventProcessExited:
			exitCode := ev.Raw.Exit.ExitCode
			log.Info("debuggee exited", "PID", ev.Pid, "ExitCode", exitCode)
			return exitCode, nil
		}
	}

	return 0, nil
}

// watchKill kills the debugged process when the context is cancelled, which
// unblocks the event wait with a process-exit notification.
func watchKill(ctx context.Context, dbg *debugger.Debugger) func() {
	return watch(ctx, dbg.Kill)
}

// watchDetach releases the debugged process when the context is cancelled,
// leaving it running.
func watchDetach(ctx context.Context, dbg *debugger.Debugger) func() {
	return watch(ctx, func() { _ = dbg.Detach() })
}

func watch(ctx context.Context, onCancel func()) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			onCancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
