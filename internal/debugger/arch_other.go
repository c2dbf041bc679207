//go:build !windows

package debugger

type processorFeature uint32

const (
	featureMMX processorFeature = 3
	featureXMM processorFeature = 6
)

func probeProcessorFeature(f processorFeature) bool {
	// Any x86 CPU a supported OS still runs on has these.
	switch f {
	case featureMMX, featureXMM:
		return true
	default:
		return false
	}
}
