package clap

import "math"

// Loudness constants of the classifier.
const (
	// rmsGateFactor is the share of the threshold the RMS must exceed on
	// top of the noise floor.
	rmsGateFactor = 0.25
	// rearmFactor is the share of the threshold the peak must fall below
	// before the detector re-arms.
	rearmFactor = 0.55
)

// Analyze returns the peak absolute amplitude and the RMS of window.
// An empty window yields zeros.
func Analyze(window []float32) (peak, rms float64) {
	if len(window) == 0 {
		return 0, 0
	}

	var sum float64
	for _, s := range window {
		x := float64(s)
		sum += x * x
		if ax := math.Abs(x); ax > peak {
			peak = ax
		}
	}
	return peak, math.Sqrt(sum / float64(len(window)))
}

// IsLoud reports whether a window with the given features counts as a
// clap candidate against threshold and floor.
func IsLoud(peak, rms, threshold, floor float64) bool {
	return peak > threshold && rms > floor+threshold*rmsGateFactor
}

// RearmLevel is the peak level below which a cooling detector re-arms.
func RearmLevel(threshold float64) float64 {
	return threshold * rearmFactor
}
