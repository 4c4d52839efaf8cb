package commands

import (
	"github.com/yegors/mfd-calc/internal/cli"
	"github.com/yegors/mfd-calc/internal/output"
	"github.com/yegors/mfd-calc/internal/physics"
	"github.com/yegors/mfd-calc/pkg/logger"
)

// Vnav returns the vertical navigation calculator
func Vnav() cli.Command {
	return cli.Command{
		Name: "vnav-calculator",
		Args: []cli.Arg{
			{Name: "current_alt_ft", Description: "Current altitude (feet)"},
			{Name: "target_alt_ft", Description: "Target altitude at constraint (feet)"},
			{Name: "distance_nm", Description: "Distance to constraint (nautical miles)", Check: cli.NonNegative()},
			{Name: "groundspeed_kts", Description: "Current groundspeed (knots)", Check: cli.Positive()},
			{Name: "current_vs_fpm", Description: "Current vertical speed (ft/min)", Optional: true},
		},
		Example:     "35000 10000 100 450 -1500",
		ExampleNote: "Descend from FL350 to 10000 ft, 100 nm away, GS 450 kts, VS -1500 fpm",
		Run:         runVnav,
	}
}

func runVnav(env *cli.Env, in cli.Values) (*output.Object, error) {
	current := in.Get("current_alt_ft")
	target := in.Get("target_alt_ft")
	gs := in.Get("groundspeed_kts")

	r := physics.ComputeVnav(current, target, in.Get("distance_nm"), gs)
	aux := physics.ComputeVnavAux(gs, in.Get("current_vs_fpm"), target-current)

	env.Log.Debug("Computed vertical path",
		logger.Bool("descent", r.IsDescent),
		logger.Float64("fpa_deg", r.FlightPathAngleDeg),
		logger.Bool("vs_given", in.Has("current_vs_fpm")),
	)

	return output.Vnav(r, aux), nil
}
