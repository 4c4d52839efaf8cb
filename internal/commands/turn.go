package commands

import (
	"github.com/yegors/mfd-calc/internal/cli"
	"github.com/yegors/mfd-calc/internal/output"
	"github.com/yegors/mfd-calc/internal/physics"
	"github.com/yegors/mfd-calc/pkg/logger"
)

// MaxBankDeg is the steepest bank angle accepted by the turn calculator
const MaxBankDeg = 85.0

// Turn returns the turn performance calculator
func Turn() cli.Command {
	return cli.Command{
		Name: "turn-calculator",
		Args: []cli.Arg{
			{Name: "tas_kts", Description: "True airspeed (knots)", Check: cli.Positive()},
			{Name: "bank_deg", Description: "Bank angle (degrees)", Check: cli.Within(-MaxBankDeg, MaxBankDeg)},
			{Name: "course_change_deg", Description: "Course change required (degrees)"},
		},
		Example:     "250 25 90",
		ExampleNote: "250 knots TAS, 25° bank, 90° turn",
		Run:         runTurn,
	}
}

func runTurn(env *cli.Env, in cli.Values) (*output.Object, error) {
	r := physics.ComputeTurn(in.Get("tas_kts"), in.Get("bank_deg"), in.Get("course_change_deg"))

	if r.RadiusNM == physics.NotComputable {
		env.Log.Debug("Wings level, turn radius unbounded", logger.Float64("bank_deg", in.Get("bank_deg")))
	}

	return output.Turn(r), nil
}
