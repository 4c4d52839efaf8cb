package physics

import "math"

// WindResult holds the wind decomposed along the ground track.
type WindResult struct {
	HeadwindKt  float64 // +headwind, -tailwind
	CrosswindKt float64 // +from the right, -from the left
	TotalWindKt float64
	DriftDeg    float64 // Track minus heading, in (-180, 180]

	// WCADeg is the wind correction angle (+crab right). It needs true
	// airspeed, so it is nil when none was supplied or no correction can hold
	// the track.
	WCADeg *float64
}

// ComputeWind decomposes a wind (direction FROM, speed in knots) into components
// along and across the ground track. All bearings are in degrees and may be
// given in any range.
func ComputeWind(trackDeg, headingDeg, windFromDeg, windSpeedKt float64) WindResult {
	var r WindResult

	track := NormalizeBearing(trackDeg)
	heading := NormalizeBearing(headingDeg)
	windFrom := NormalizeBearing(windFromDeg)

	r.DriftDeg = SignedAngle(track - heading)

	// Wind from dead ahead is relative 180: cos = -1, negated to a headwind.
	rel := DegToRad(SignedAngle(windFrom - track))
	r.HeadwindKt = -windSpeedKt * math.Cos(rel)
	r.CrosswindKt = windSpeedKt * math.Sin(rel)
	r.TotalWindKt = windSpeedKt

	return r
}

// ComputeWindWithTAS is ComputeWind with the wind correction angle filled in from
// the true airspeed (knots). A non-positive TAS gives the same result as ComputeWind.
func ComputeWindWithTAS(trackDeg, headingDeg, windFromDeg, windSpeedKt, tasKnots float64) WindResult {
	r := ComputeWind(trackDeg, headingDeg, windFromDeg, windSpeedKt)
	if wca, ok := WindCorrectionAngle(r.CrosswindKt, tasKnots); ok {
		r.WCADeg = &wca
	}
	return r
}

// WindCorrectionAngle returns asin(crosswind / TAS) in degrees. The second return
// is false when TAS is not positive or the crosswind exceeds it.
func WindCorrectionAngle(crosswindKt, tasKnots float64) (float64, bool) {
	if tasKnots <= 0 || math.Abs(crosswindKt) > tasKnots {
		return 0, false
	}
	return RadToDeg(math.Asin(crosswindKt / tasKnots)), true
}
