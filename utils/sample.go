// SPDX-License-Identifier: EPL-2.0

// Package utils holds the per-sample arithmetic shared by the decoders and
// the rate converter.
package utils

// Full-scale magnitudes used when moving between float and integer PCM.
const (
	Int16Scale    float32 = 32768.0
	Int16MaxScale float32 = 32767.0
)

// CubicInterpolate evaluates a Catmull-Rom spline through y0..y3 at x,
// where x (0 <= x <= 1) is the fractional position between y1 and y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to a 16-bit sample.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * Int16MaxScale)
}

// Int16ToFloat32 normalizes a 16-bit sample into [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / Int16Scale
}

// IntToFloat32 normalizes an integer sample of the given bit depth.
// Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	var full float32
	switch bitDepth {
	case 8:
		full = 128.0
	case 24:
		full = 8388608.0
	case 32:
		full = 2147483648.0
	default:
		full = Int16Scale
	}

	return float32(v) / full
}

// AddClamped adds v to the accumulated sample acc, saturating at the int16
// limits instead of wrapping.
func AddClamped(acc int16, v int32) int16 {
	sum := int32(acc) + v
	if sum > 32767 {
		return 32767
	}
	if sum < -32768 {
		return -32768
	}

	return int16(sum)
}
