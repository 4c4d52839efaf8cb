package physics

import (
	"fmt"
	"math"
	"time"

	"github.com/westphae/geomag/pkg/egm96"
	"github.com/westphae/geomag/pkg/wmm"
)

// Constants
const (
	G               = 9.80665  // Gravity (m/s^2)
	KnotsToMs       = 0.514444 // Conversion factor from Knots to m/s
	MetersToFeet    = 3.28084  // Conversion factor from meters to feet
	FeetToMeters    = 0.3048   // Conversion factor from feet to meters
	NMToFeet        = 6076.12  // Feet per nautical mile
	StandardRateDps = 3.0      // Standard rate turn (degrees per second)

	// VSPerGSFactor is feet per minute per knot (6076.12 / 60); times the path
	// gradient it gives the vertical speed to hold that path.
	VSPerGSFactor = 101.27

	// NotComputable is reported for quantities that are unbounded or undefined
	// for the given inputs (wings level, near-level segment, diverging VS).
	NotComputable = 999.9

	// UnboundedRadiusFt is the wings-level turn radius reported in feet.
	UnboundedRadiusFt = 999900.0
)

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// NormalizeBearing maps any angle in degrees to [0, 360).
func NormalizeBearing(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// -1e-15 + 360 rounds to 360
	if a >= 360 {
		a -= 360
	}
	return a
}

// SignedAngle maps any angle in degrees to the signed deviation range (-180, 180].
func SignedAngle(deg float64) float64 {
	a := NormalizeBearing(deg)
	if a > 180 {
		a -= 360
	}
	return a
}

// ------------------------------------------------------------------------------------------------
// MAGNETIC VARIATION
// ------------------------------------------------------------------------------------------------

// MagneticVariation calculates the magnetic declination for a given position and time
// Returns declination in degrees (+East, -West)
func MagneticVariation(lat, lon, altFt float64, date time.Time) (float64, error) {
	if lat < -90 || lat > 90 {
		return 0, fmt.Errorf("invalid latitude: %f", lat)
	}
	if lon < -180 || lon > 180 {
		return 0, fmt.Errorf("invalid longitude: %f", lon)
	}

	loc := egm96.NewLocationGeodetic(lat, lon, altFt*FeetToMeters)

	mag, err := wmm.CalculateWMMMagneticField(loc, date)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate magnetic model: %w", err)
	}

	return mag.D(), nil
}

// MagneticToTrue converts a magnetic bearing to a true bearing in [0, 360)
// using a declination in degrees (+East, -West).
func MagneticToTrue(magneticDeg, variationDeg float64) float64 {
	return NormalizeBearing(magneticDeg + variationDeg)
}
