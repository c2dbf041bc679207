package process

import (
	"os"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProcessesContainsSelf(t *testing.T) {
	log := testr.New(t)

	self := Uint32_ToPidT(uint32(os.Getpid()))
	procs := ListProcesses(log)

	require.NotEmpty(t, procs)

	handle, found := procs[self]
	require.True(t, found, "the current process should appear in the snapshot")
	assert.Equal(t, self, handle.Pid)
	assert.NotEmpty(t, handle.Name)
}

func TestParentPid(t *testing.T) {
	self := Uint32_ToPidT(uint32(os.Getpid()))
	parent := ParentPid(self)

	assert.Equal(t, Uint32_ToPidT(uint32(os.Getppid())), parent)

	// A pid that cannot exist resolves to the sentinel
	assert.Equal(t, UnknownPID, ParentPid(UnknownPID))
}
