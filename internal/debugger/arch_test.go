package debugger

import (
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostArch(t *testing.T) {
	t.Parallel()

	arch := hostArch()

	assert.Positive(t, arch.PageSize())
	assert.Equal(t, strconv.IntSize/8, arch.PointerSize())

	switch runtime.GOARCH {
	case "amd64":
		assert.Equal(t, "x86-64", arch.CPU())
		assert.Equal(t, "rsp", arch.StackPointer())
		assert.Equal(t, "rbp", arch.FramePointer())
		assert.Equal(t, "rip", arch.InstructionPointer())
		assert.True(t, arch.HasFeature("MMX"))
		assert.True(t, arch.HasFeature("XMM"))
	case "arm64":
		assert.Equal(t, "aarch64", arch.CPU())
		assert.Equal(t, "pc", arch.InstructionPointer())
	}

	assert.False(t, arch.HasFeature("NO-SUCH-FEATURE"))
}

func TestHostArchRegisters(t *testing.T) {
	t.Parallel()

	arch := hostArch()

	switch runtime.GOARCH {
	case "amd64":
		assert.True(t, arch.HasRegister("rax"))
		assert.True(t, arch.HasRegister("r15"))
		assert.True(t, arch.HasRegister(arch.StackPointer()))
		assert.True(t, arch.HasRegister(arch.InstructionPointer()))
	case "arm64":
		assert.True(t, arch.HasRegister("x0"))
		assert.True(t, arch.HasRegister("x30"))
		assert.True(t, arch.HasRegister(arch.StackPointer()))
		assert.True(t, arch.HasRegister(arch.InstructionPointer()))
	}

	assert.False(t, arch.HasRegister("no-such-register"))
}
