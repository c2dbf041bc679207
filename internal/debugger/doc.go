/*
Package debugger implements the debug-session engine: it establishes OS-level
control over a target process (by spawning it under debug control or attaching
to a running one), translates the stream of raw OS debug notifications into
normalized events, and maintains the live set of threads of the debugged
process.

# Session model

A Debugger manages at most one session at a time. The session exists exactly
while a process descriptor is present: Spawn and Attach create it, Detach,
Kill and a process-exit notification end it. While a debug event is pending,
the OS keeps every thread of the target frozen; the engine's explicit continue
call is what releases them.

# Event dispatch

WaitDebugEvent is the single consumer of the OS wait primitive. Thread
lifecycle, module-load and debug-string notifications are bookkept and
acknowledged internally; only exceptions and process exit are surfaced to the
caller, one event in flight at a time, acknowledged via Resume. Events are
processed strictly in delivery order and never buffered.

# OS seam

The Backend interface isolates the OS debug facility (Win32 on Windows).
Tests drive the engine through a scripted fake backend, so the full state
machine is exercised on every platform.
*/
package debugger
