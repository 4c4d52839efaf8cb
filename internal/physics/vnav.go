package physics

import "math"

// VnavResult holds the vertical path needed to meet an altitude constraint.
type VnavResult struct {
	AltitudeToLoseFt    float64 // Current minus target altitude (+descent required)
	FlightPathAngleDeg  float64 // Path angle to the constraint (+climb, -descent)
	RequiredVSFpm       float64 // Vertical speed to fly that path at the current groundspeed
	TODDistanceNM       float64 // Top of descent distance on a 3° path (0 when climbing)
	TimeToConstraintMin float64 // Time to the constraint at the current groundspeed
	DistancePer1000Ft   float64 // Track miles per 1000 ft of altitude change
	IsDescent           bool
	OnIdlePath          bool // Path angle is within the acceptable band for the direction
}

// VnavAuxResult holds reference vertical speeds for the current groundspeed.
type VnavAuxResult struct {
	VSFor3DegFpm          float64 // VS for a 3° descent
	VSFor5DegFpm          float64 // VS for a 5° descent (high drag / emergency)
	DistanceAtCurrentVSNM float64 // Distance covered before the altitude change completes at the current VS
}

// Clamps keeping the path geometry finite
const (
	minDistanceNM    = 0.01
	minGroundspeedKt = 1.0
	minAltChangeFt   = 10.0
	minCurrentVSFpm  = 10.0
)

// Acceptable path bands
const (
	idleDescentMinDeg = 2.0
	idleDescentMaxDeg = 4.0
	climbMinDeg       = 0.5
	climbMaxDeg       = 15.0
)

// ComputeVnav calculates the vertical path from the current altitude to a target
// altitude distanceNM ahead, flown at groundspeedKt.
//
// Key formulas:
//   - Flight path angle: γ = atan(Δh / distance)
//   - Required VS: VS_fpm = 101.27 * GS_kts * tan(γ)
//   - TOD for 3°: D_nm = Δh_ft / (6076.12 * tan(3°))
//
// Distances below 0.01 nm and groundspeeds below 1 kt are clamped.
func ComputeVnav(currentAltFt, targetAltFt, distanceNM, groundspeedKt float64) VnavResult {
	var r VnavResult

	altChangeFt := targetAltFt - currentAltFt
	r.AltitudeToLoseFt = -altChangeFt
	r.IsDescent = altChangeFt < 0

	distanceNM = math.Max(distanceNM, minDistanceNM)
	groundspeedKt = math.Max(groundspeedKt, minGroundspeedKt)

	gamma := math.Atan(altChangeFt / (distanceNM * NMToFeet))
	r.FlightPathAngleDeg = RadToDeg(gamma)
	r.RequiredVSFpm = VSPerGSFactor * groundspeedKt * math.Tan(gamma)

	if r.IsDescent {
		r.TODDistanceNM = math.Abs(altChangeFt) / (NMToFeet * math.Tan(DegToRad(3)))
	}

	r.TimeToConstraintMin = (distanceNM / groundspeedKt) * 60

	if math.Abs(altChangeFt) > minAltChangeFt {
		r.DistancePer1000Ft = (distanceNM * 1000) / math.Abs(altChangeFt)
	} else {
		r.DistancePer1000Ft = NotComputable
	}

	if r.IsDescent {
		fpa := math.Abs(r.FlightPathAngleDeg)
		r.OnIdlePath = fpa >= idleDescentMinDeg && fpa <= idleDescentMaxDeg
	} else {
		r.OnIdlePath = r.FlightPathAngleDeg >= climbMinDeg && r.FlightPathAngleDeg <= climbMaxDeg
	}

	return r
}

// ComputeVnavAux calculates reference vertical speeds for the 3° and 5° descent
// paths and the distance flown before altChangeFt (target minus current) is
// achieved at currentVSFpm. That distance is NotComputable when the current
// vertical speed is negligible or trends away from the target.
func ComputeVnavAux(groundspeedKt, currentVSFpm, altChangeFt float64) VnavAuxResult {
	var r VnavAuxResult

	r.VSFor3DegFpm = -VSPerGSFactor * groundspeedKt * math.Tan(DegToRad(3))
	r.VSFor5DegFpm = -VSPerGSFactor * groundspeedKt * math.Tan(DegToRad(5))

	r.DistanceAtCurrentVSNM = NotComputable
	if math.Abs(currentVSFpm) > minCurrentVSFpm && groundspeedKt > minGroundspeedKt {
		timeMin := altChangeFt / currentVSFpm
		if d := timeMin * groundspeedKt / 60; d >= 0 {
			r.DistanceAtCurrentVSNM = d
		}
	}

	return r
}
