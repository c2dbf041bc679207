//go:build windows && 386

package debugger

// winDebugEvent mirrors the Win32 DEBUG_EVENT structure. On 32-bit Windows the
// union follows the thread id without padding; its size is that of the largest
// member, EXCEPTION_DEBUG_INFO.
type winDebugEvent struct {
	code      uint32
	processID uint32
	threadID  uint32
	u         [84]byte
}
