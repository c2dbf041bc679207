package debugger

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/DylanHe215/edb-debugger/pkg/slices"
)

// Arch is the architecture capability table, resolved once at startup instead
// of scattering platform conditionals through the engine.
type Arch struct {
	cpu                string
	pageSize           int
	pointerSize        int
	stackPointer       string
	framePointer       string
	instructionPointer string
	features           map[string]bool
	registers          []string
}

func (a Arch) CPU() string                { return a.cpu }
func (a Arch) PageSize() int              { return a.pageSize }
func (a Arch) PointerSize() int           { return a.pointerSize }
func (a Arch) StackPointer() string       { return a.stackPointer }
func (a Arch) FramePointer() string       { return a.framePointer }
func (a Arch) InstructionPointer() string { return a.instructionPointer }

func (a Arch) HasFeature(name string) bool {
	return a.features[name]
}

// Registers lists the general-purpose register names of the architecture.
func (a Arch) Registers() []string {
	return a.registers
}

func (a Arch) HasRegister(name string) bool {
	return slices.Contains(a.registers, name)
}

var hostArch = sync.OnceValue(resolveArch)

func resolveArch() Arch {
	a := Arch{
		pageSize:    os.Getpagesize(),
		pointerSize: strconv.IntSize / 8,
		features:    map[string]bool{},
	}

	switch runtime.GOARCH {
	case "amd64":
		a.cpu = "x86-64"
		a.stackPointer = "rsp"
		a.framePointer = "rbp"
		a.instructionPointer = "rip"
		a.features["MMX"] = true
		a.features["XMM"] = true
		a.registers = []string{
			"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rbp", "rsp",
			"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
			"rip", "rflags",
		}
	case "386":
		a.cpu = "x86"
		a.stackPointer = "esp"
		a.framePointer = "ebp"
		a.instructionPointer = "eip"
		a.features["MMX"] = probeProcessorFeature(featureMMX)
		a.features["XMM"] = probeProcessorFeature(featureXMM)
		a.registers = []string{
			"eax", "ebx", "ecx", "edx", "esi", "edi", "ebp", "esp",
			"eip", "eflags",
		}
	case "arm64":
		a.cpu = "aarch64"
		a.stackPointer = "sp"
		a.framePointer = "x29"
		a.instructionPointer = "pc"
		for i := 0; i <= 30; i++ {
			a.registers = append(a.registers, fmt.Sprintf("x%d", i))
		}
		a.registers = append(a.registers, "sp", "pc")
	default:
		a.cpu = runtime.GOARCH
	}

	return a
}
