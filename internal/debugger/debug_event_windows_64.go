//go:build windows && !386

package debugger

// winDebugEvent mirrors the Win32 DEBUG_EVENT structure. On 64-bit Windows the
// union is 8-aligned, leaving 4 bytes of padding after the thread id; its size
// is that of the largest member, EXCEPTION_DEBUG_INFO.
type winDebugEvent struct {
	code      uint32
	processID uint32
	threadID  uint32
	_         uint32
	u         [160]byte
}
