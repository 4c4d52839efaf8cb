package physics

import "math"

// TurnResult holds the turn performance for a coordinated, constant bank turn.
// Distances are given in both nautical miles and feet.
type TurnResult struct {
	RadiusNM            float64 // Turn radius (nm)
	RadiusFt            float64 // Turn radius (ft)
	TurnRateDps         float64 // Rate of turn (degrees per second)
	LeadDistanceNM      float64 // Distance before the fix to start the turn (nm)
	LeadDistanceFt      float64 // Distance before the fix to start the turn (ft)
	TimeToTurnSec       float64 // Time to complete the course change (s)
	LoadFactor          float64 // G-loading in the turn
	StandardRateBankDeg float64 // Bank angle for a standard rate turn at this TAS
}

// Wings-level thresholds
const (
	minTanBank     = 0.001
	minTurnRateDps = 0.01
)

// ComputeTurn calculates turn performance from true airspeed (knots), bank angle
// (degrees, +right) and the course change to fly (degrees).
//
// Formulas:
//   - Turn radius: R = V² / (g * tan φ)
//   - Turn rate: ω = (g * tan φ) / V
//   - Lead distance: L = R * tan(Δψ/2)
//   - Load factor: n = 1 / cos φ
//   - Standard rate bank: φ = atan(ω * V / g) where ω = 3°/s
//
// With the wings essentially level the radius is unbounded, so the radius,
// lead and timing fields carry NotComputable instead.
func ComputeTurn(tasKnots, bankDeg, courseChangeDeg float64) TurnResult {
	var r TurnResult

	vMs := tasKnots * KnotsToMs
	phi := DegToRad(bankDeg)

	r.LoadFactor = 1.0 / math.Cos(phi)

	tanPhi := math.Tan(phi)
	if math.Abs(tanPhi) < minTanBank {
		r.RadiusNM = NotComputable
		r.RadiusFt = UnboundedRadiusFt
		r.TurnRateDps = 0
		r.LeadDistanceNM = 0
		r.LeadDistanceFt = 0
		r.TimeToTurnSec = NotComputable
	} else {
		radiusM := (vMs * vMs) / (G * tanPhi)
		r.RadiusFt = radiusM * MetersToFeet
		r.RadiusNM = r.RadiusFt / NMToFeet

		omega := (G * tanPhi) / vMs // rad/s
		r.TurnRateDps = RadToDeg(omega)

		leadM := radiusM * math.Tan(DegToRad(courseChangeDeg)/2)
		r.LeadDistanceFt = leadM * MetersToFeet
		r.LeadDistanceNM = r.LeadDistanceFt / NMToFeet

		if r.TurnRateDps > minTurnRateDps {
			r.TimeToTurnSec = math.Abs(courseChangeDeg) / r.TurnRateDps
		} else {
			r.TimeToTurnSec = NotComputable
		}
	}

	r.StandardRateBankDeg = StandardRateBank(tasKnots)

	return r
}

// StandardRateBank returns the bank angle (degrees) that gives a 3°/s turn at
// the given true airspeed (knots).
func StandardRateBank(tasKnots float64) float64 {
	omegaStd := DegToRad(StandardRateDps)
	return RadToDeg(math.Atan(omegaStd * tasKnots * KnotsToMs / G))
}
