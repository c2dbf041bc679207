//go:build windows

package debugger

type processorFeature uint32

// Values from winnt.h.
const (
	featureMMX processorFeature = 3 // PF_MMX_INSTRUCTIONS_AVAILABLE
	featureXMM processorFeature = 6 // PF_XMMI_INSTRUCTIONS_AVAILABLE
)

var procIsProcessorFeaturePresent = modkernel32.NewProc("IsProcessorFeaturePresent")

func probeProcessorFeature(f processorFeature) bool {
	r1, _, _ := procIsProcessorFeaturePresent.Call(uintptr(f))
	return r1 != 0
}
