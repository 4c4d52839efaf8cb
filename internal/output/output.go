// Package output renders calculator results as the flat JSON objects consumed
// by the MFD display. Field names and their order are part of that contract.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/iancoleman/orderedmap"

	"github.com/yegors/mfd-calc/internal/physics"
)

// Object is a JSON object that keeps insertion order and writes numbers with
// two decimals
type Object struct {
	m *orderedmap.OrderedMap
}

// NewObject returns an empty object
func NewObject() *Object {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return &Object{m: m}
}

// Number adds a fixed-point number field. NaN and infinities have no JSON
// representation and are written as null.
func (o *Object) Number(key string, v float64) *Object {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		o.m.Set(key, nil)
		return o
	}
	o.m.Set(key, json.Number(strconv.FormatFloat(v, 'f', 2, 64)))
	return o
}

// OptionalNumber adds a number field, or null when v is nil
func (o *Object) OptionalNumber(key string, v *float64) *Object {
	if v == nil {
		o.m.Set(key, nil)
		return o
	}
	return o.Number(key, *v)
}

// Bool adds a literal true/false field
func (o *Object) Bool(key string, v bool) *Object {
	o.m.Set(key, v)
	return o
}

// Keys returns the field names in output order
func (o *Object) Keys() []string {
	return o.m.Keys()
}

// MarshalJSON implements json.Marshaler
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.m.MarshalJSON()
}

// Write writes the object indented by two spaces and followed by a newline
func (o *Object) Write(w io.Writer) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// Turn renders a turn performance result
func Turn(r physics.TurnResult) *Object {
	return NewObject().
		Number("radius_nm", r.RadiusNM).
		Number("radius_ft", r.RadiusFt).
		Number("turn_rate_dps", r.TurnRateDps).
		Number("lead_distance_nm", r.LeadDistanceNM).
		Number("lead_distance_ft", r.LeadDistanceFt).
		Number("time_to_turn_sec", r.TimeToTurnSec).
		Number("load_factor", r.LoadFactor).
		Number("standard_rate_bank", r.StandardRateBankDeg)
}

// Vnav renders a VNAV result together with its reference speeds
func Vnav(r physics.VnavResult, aux physics.VnavAuxResult) *Object {
	return NewObject().
		Number("altitude_to_lose_ft", r.AltitudeToLoseFt).
		Number("flight_path_angle_deg", r.FlightPathAngleDeg).
		Number("required_vs_fpm", r.RequiredVSFpm).
		Number("tod_distance_nm", r.TODDistanceNM).
		Number("time_to_constraint_min", r.TimeToConstraintMin).
		Number("distance_per_1000ft", r.DistancePer1000Ft).
		Bool("is_descent", r.IsDescent).
		Bool("on_idle_path", r.OnIdlePath).
		Number("vs_for_3deg", aux.VSFor3DegFpm).
		Number("vs_for_5deg", aux.VSFor5DegFpm).
		Number("distance_at_current_vs_nm", aux.DistanceAtCurrentVSNM)
}

// Wind renders a wind result. An unavailable wind correction angle is null.
func Wind(r physics.WindResult) *Object {
	return NewObject().
		Number("headwind", r.HeadwindKt).
		Number("crosswind", r.CrosswindKt).
		Number("total_wind", r.TotalWindKt).
		OptionalNumber("wca", r.WCADeg).
		Number("drift", r.DriftDeg)
}
