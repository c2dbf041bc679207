//go:build windows

package debugger

import (
	"golang.org/x/sys/windows"
)

// Required to debug and adjust the memory of a process owned by another
// account: with SeDebugPrivilege enabled, OpenProcess grants the requested
// access regardless of the security descriptor.
//
// The privilege must already be assigned to the current user for enabling to
// succeed, and enabling it is detectable by anti-debug code (it changes the
// debuggee's privileges too).
func adjustDebugPrivilege(proc windows.Handle, enable bool) bool {
	var token windows.Token

	// The process handle must have PROCESS_QUERY_INFORMATION access.
	if err := windows.OpenProcessToken(proc, windows.TOKEN_ADJUST_PRIVILEGES, &token); err != nil {
		return false
	}
	defer token.Close()

	privilegeName, err := windows.UTF16PtrFromString("SeDebugPrivilege")
	if err != nil {
		return false
	}

	var luid windows.LUID
	if err := windows.LookupPrivilegeValue(nil, privilegeName, &luid); err != nil {
		return false
	}

	tp := windows.Tokenprivileges{PrivilegeCount: 1}
	tp.Privileges[0].Luid = luid
	if enable {
		tp.Privileges[0].Attributes = windows.SE_PRIVILEGE_ENABLED
	}

	return windows.AdjustTokenPrivileges(token, false, &tp, 0, nil, nil) == nil
}
