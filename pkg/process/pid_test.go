package process

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPidConversions(t *testing.T) {
	t.Parallel()

	pid, err := Int64_ToPidT(1234)
	require.NoError(t, err)
	assert.Equal(t, Pid_t(1234), pid)

	_, err = Int64_ToPidT(-1)
	require.Error(t, err)

	_, err = Int64_ToPidT(math.MaxUint32 + 1)
	require.Error(t, err)

	u32, err := PidT_ToUint32(Pid_t(42))
	require.NoError(t, err)
	assert.Equal(t, uint32(42), u32)

	_, err = PidT_ToUint32(UnknownPID)
	require.Error(t, err)

	assert.Equal(t, Pid_t(math.MaxUint32), Uint32_ToPidT(math.MaxUint32))
}

func TestStringToPidT(t *testing.T) {
	t.Parallel()

	pid, err := StringToPidT("512")
	require.NoError(t, err)
	assert.Equal(t, Pid_t(512), pid)

	pid, err = StringToPidT("-1")
	require.Error(t, err)
	assert.Equal(t, UnknownPID, pid)

	_, err = StringToPidT("not-a-pid")
	require.Error(t, err)
}

func TestProcessHandle_Comparable(t *testing.T) {
	t.Parallel()

	h1 := NewProcessHandle(Uint32_ToPidT(100), "init", ProcessIdentityTime(Uint32_ToPidT(100)))
	h2 := NewProcessHandle(Uint32_ToPidT(100), "init", ProcessIdentityTime(Uint32_ToPidT(100)))
	h3 := NewProcessHandle(Uint32_ToPidT(200), "sshd", ProcessIdentityTime(Uint32_ToPidT(200)))

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)

	// Verify usable as map key
	m := map[ProcessHandle]string{
		h1: "first",
		h3: "second",
	}
	assert.Equal(t, "first", m[h2])
	assert.Equal(t, "second", m[h3])
}
