package commands

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/yegors/mfd-calc/internal/cli"
	"github.com/yegors/mfd-calc/internal/output"
	"github.com/yegors/mfd-calc/internal/physics"
	"github.com/yegors/mfd-calc/pkg/logger"
)

// optionalFloat is a float flag that remembers whether it was set
type optionalFloat struct {
	value float64
	set   bool
}

func (f *optionalFloat) String() string {
	if !f.set {
		return ""
	}
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

type windOptions struct {
	magnetic bool
	lat, lon optionalFloat
	altFt    optionalFloat
	date     string
}

// Wind returns the wind component calculator
func Wind() cli.Command {
	opts := &windOptions{}
	return cli.Command{
		Name: "wind-calculator",
		Args: []cli.Arg{
			{Name: "track", Description: "Ground track (degrees true)"},
			{Name: "heading", Description: "Aircraft heading (degrees)"},
			{Name: "wind_dir", Description: "Wind direction FROM (degrees true)"},
			{Name: "wind_speed", Description: "Wind speed (knots)", Check: cli.NonNegative()},
			{Name: "tas_kts", Description: "True airspeed for the wind correction angle (knots)", Optional: true, Check: cli.Positive()},
		},
		Example:     "90 85 270 15",
		ExampleNote: "Track 90°, Heading 85°, Wind from 270° at 15 knots",
		Flags: func(fs *flag.FlagSet) {
			fs.BoolVar(&opts.magnetic, "magnetic", false, "Track and heading are magnetic; convert to true with the World Magnetic Model")
			fs.Var(&opts.lat, "lat", "Latitude for magnetic variation (defaults to the configured station)")
			fs.Var(&opts.lon, "lon", "Longitude for magnetic variation (defaults to the configured station)")
			fs.Var(&opts.altFt, "alt-ft", "Altitude for magnetic variation in feet (defaults to the station elevation)")
			fs.StringVar(&opts.date, "date", "", "Date for magnetic variation, YYYY-MM-DD (defaults to today UTC, so results can change from day to day)")
		},
		Run: func(env *cli.Env, in cli.Values) (*output.Object, error) {
			return runWind(env, in, opts)
		},
	}
}

func runWind(env *cli.Env, in cli.Values, opts *windOptions) (*output.Object, error) {
	track := in.Get("track")
	heading := in.Get("heading")

	if opts.magnetic || env.Config.Station.MagneticHeadings {
		variation, err := magneticVariation(env, opts)
		if err != nil {
			return nil, err
		}
		env.Log.Info("Converting magnetic bearings to true", logger.Float64("variation_deg", variation))
		track = physics.MagneticToTrue(track, variation)
		heading = physics.MagneticToTrue(heading, variation)
	}

	r := physics.ComputeWindWithTAS(track, heading, in.Get("wind_dir"), in.Get("wind_speed"), in.Get("tas_kts"))
	if r.WCADeg == nil && in.Has("tas_kts") {
		env.Log.Warn("Crosswind exceeds TAS, wind correction angle unavailable",
			logger.Float64("crosswind_kt", r.CrosswindKt),
			logger.Float64("tas_kts", in.Get("tas_kts")),
		)
	}

	return output.Wind(r), nil
}

// magneticVariation resolves position and date from flags or the station config
func magneticVariation(env *cli.Env, opts *windOptions) (float64, error) {
	station := env.Config.Station

	var lat, lon float64
	switch {
	case opts.lat.set && opts.lon.set:
		lat, lon = opts.lat.value, opts.lon.value
	case opts.lat.set || opts.lon.set:
		return 0, fmt.Errorf("-lat and -lon must be given together")
	case station.HasPosition():
		lat, lon = *station.Latitude, *station.Longitude
	default:
		return 0, fmt.Errorf("magnetic bearings need a position: use -lat and -lon or configure the station")
	}

	altFt := station.ElevationFeet
	if opts.altFt.set {
		altFt = opts.altFt.value
	}

	date := time.Now().UTC()
	if opts.date != "" {
		d, err := time.Parse(time.DateOnly, opts.date)
		if err != nil {
			return 0, fmt.Errorf("invalid -date %q: %w", opts.date, err)
		}
		date = d
	}
	env.Log.Info("Magnetic model date", logger.String("date", date.Format(time.DateOnly)))

	variation, err := physics.MagneticVariation(lat, lon, altFt, date)
	if err != nil {
		return 0, fmt.Errorf("magnetic variation at %.4f,%.4f: %w", lat, lon, err)
	}
	return variation, nil
}
