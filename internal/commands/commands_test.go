package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yegors/mfd-calc/internal/cli"
)

func run(t *testing.T, cmd cli.Command, args ...string) (int, string, string) {
	t.Helper()
	t.Chdir(t.TempDir())
	var stdout, stderr bytes.Buffer
	code := cli.Main(cmd, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func decode(t *testing.T, stdout string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(stdout), &m); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	return m
}

func TestTurnOutput(t *testing.T) {
	code, stdout, stderr := run(t, Turn(), "250", "25", "90")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	expected := `{
  "radius_nm": 1.95,
  "radius_ft": 11867.19,
  "turn_rate_dps": 2.04,
  "lead_distance_nm": 1.95,
  "lead_distance_ft": 11867.19,
  "time_to_turn_sec": 44.18,
  "load_factor": 1.10,
  "standard_rate_bank": 34.48
}
`
	if stdout != expected {
		t.Errorf("output =\n%s\nexpected\n%s", stdout, expected)
	}
}

func TestTurnLeftBank(t *testing.T) {
	code, stdout, stderr := run(t, Turn(), "250", "-25", "90")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	m := decode(t, stdout)
	if m["radius_ft"] != -11867.19 {
		t.Errorf("radius_ft = %v, expected -11867.19", m["radius_ft"])
	}
	if m["time_to_turn_sec"] != 999.9 {
		t.Errorf("time_to_turn_sec = %v, expected 999.9", m["time_to_turn_sec"])
	}
}

func TestVnavOutput(t *testing.T) {
	code, stdout, stderr := run(t, Vnav(), "35000", "10000", "100", "450", "-1500")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	expected := `{
  "altitude_to_lose_ft": 25000.00,
  "flight_path_angle_deg": -2.36,
  "required_vs_fpm": -1875.02,
  "tod_distance_nm": 78.51,
  "time_to_constraint_min": 13.33,
  "distance_per_1000ft": 4.00,
  "is_descent": true,
  "on_idle_path": true,
  "vs_for_3deg": -2388.30,
  "vs_for_5deg": -3986.99,
  "distance_at_current_vs_nm": 125.00
}
`
	if stdout != expected {
		t.Errorf("output =\n%s\nexpected\n%s", stdout, expected)
	}
}

func TestVnavWithoutVerticalSpeed(t *testing.T) {
	code, stdout, stderr := run(t, Vnav(), "35000", "10000", "100", "450")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	m := decode(t, stdout)
	if m["distance_at_current_vs_nm"] != 999.9 {
		t.Errorf("distance_at_current_vs_nm = %v, expected 999.9", m["distance_at_current_vs_nm"])
	}
}

func TestVnavClimb(t *testing.T) {
	code, stdout, stderr := run(t, Vnav(), "5000", "15000", "50", "250", "1000")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	m := decode(t, stdout)
	if m["is_descent"] != false {
		t.Errorf("is_descent = %v, expected false", m["is_descent"])
	}
	if m["altitude_to_lose_ft"] != -10000.0 {
		t.Errorf("altitude_to_lose_ft = %v, expected -10000", m["altitude_to_lose_ft"])
	}
	// climbing at +1000 fpm towards a higher altitude converges
	if m["distance_at_current_vs_nm"] == 999.9 {
		t.Errorf("distance_at_current_vs_nm should be computable for a converging climb")
	}
}

func TestWindOutput(t *testing.T) {
	code, stdout, stderr := run(t, Wind(), "90", "85", "270", "15")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	expected := `{
  "headwind": 15.00,
  "crosswind": 0.00,
  "total_wind": 15.00,
  "wca": null,
  "drift": 5.00
}
`
	if stdout != expected {
		t.Errorf("output =\n%s\nexpected\n%s", stdout, expected)
	}
}

func TestWindWithTAS(t *testing.T) {
	code, stdout, stderr := run(t, Wind(), "0", "0", "90", "20", "120")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if m := decode(t, stdout); m["wca"] != 9.59 {
		t.Errorf("wca = %v, expected 9.59", m["wca"])
	}
}

func TestWindCrosswindExceedsTAS(t *testing.T) {
	code, stdout, stderr := run(t, Wind(), "-log-level", "warn", "0", "0", "90", "50", "40")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if m := decode(t, stdout); m["wca"] != nil {
		t.Errorf("wca = %v, expected null", m["wca"])
	}
	if !strings.Contains(stderr, "wind correction angle unavailable") {
		t.Errorf("expected a warning on stderr, got: %s", stderr)
	}
}

// skipIfModelExpired skips when the bundled magnetic model does not cover the date
func skipIfModelExpired(t *testing.T, stderr string) {
	t.Helper()
	if strings.Contains(stderr, "failed to evaluate magnetic model") {
		t.Skipf("magnetic model unavailable: %s", stderr)
	}
}

func TestWindMagnetic(t *testing.T) {
	// Maine has a westerly variation of well over ten degrees
	code, stdout, stderr := run(t, Wind(), "-magnetic", "-lat", "45", "-lon", "-70", "-date", "2025-06-01", "90", "85", "270", "15")
	skipIfModelExpired(t, stderr)
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	m := decode(t, stdout)

	// Variation shifts track and heading alike, so drift is unchanged
	if m["drift"] != 5.0 {
		t.Errorf("drift = %v, expected 5", m["drift"])
	}
	if m["total_wind"] != 15.0 {
		t.Errorf("total_wind = %v, expected 15", m["total_wind"])
	}
	// A westerly variation turns the true track left of 090, putting the
	// wind from 270 off the left side.
	xw, ok := m["crosswind"].(float64)
	if !ok || xw > -1 {
		t.Errorf("crosswind = %v, expected a clear crosswind after variation", m["crosswind"])
	}
}

func TestWindMagneticFromStation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mfd.toml")
	cfg := `[station]
latitude = 45.0
longitude = -70.0
magnetic_headings = true
`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := run(t, Wind(), "-config", path, "-date", "2025-06-01", "90", "85", "270", "15")
	skipIfModelExpired(t, stderr)
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if m := decode(t, stdout); m["crosswind"] == 0.0 {
		t.Errorf("station magnetic_headings should have applied variation: %s", stdout)
	}
}

func TestWindMagneticNeedsPosition(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"no position", []string{"-magnetic", "90", "85", "270", "15"}, "magnetic bearings need a position"},
		{"latitude only", []string{"-magnetic", "-lat", "51", "90", "85", "270", "15"}, "-lat and -lon must be given together"},
		{"bad date", []string{"-magnetic", "-lat", "51", "-lon", "0", "-date", "June", "90", "85", "270", "15"}, "invalid -date"},
		{"bad latitude", []string{"-magnetic", "-lat", "95", "-lon", "0", "90", "85", "270", "15"}, "magnetic variation at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, Wind(), tt.args...)
			if code != cli.ExitFailure {
				t.Errorf("exit code = %d, expected %d", code, cli.ExitFailure)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, expected nothing", stdout)
			}
			if !strings.Contains(stderr, tt.message) {
				t.Errorf("stderr = %s, expected to contain %q", stderr, tt.message)
			}
		})
	}
}

func TestRejectedInputs(t *testing.T) {
	tests := []struct {
		name    string
		cmd     cli.Command
		args    []string
		message string
	}{
		{"turn bank too steep", Turn(), []string{"250", "86", "90"}, "bank_deg must be between -85 and 85"},
		{"turn bank too steep left", Turn(), []string{"250", "-86", "90"}, "bank_deg must be between -85 and 85"},
		{"turn zero tas", Turn(), []string{"0", "25", "90"}, "tas_kts must be positive"},
		{"turn missing argument", Turn(), []string{"250", "25"}, "invalid number of arguments: expected 3, got 2"},
		{"turn not a number", Turn(), []string{"fast", "25", "90"}, "tas_kts is not a valid decimal number"},
		{"vnav negative distance", Vnav(), []string{"35000", "10000", "-1", "450"}, "distance_nm cannot be negative"},
		{"vnav zero groundspeed", Vnav(), []string{"35000", "10000", "100", "0"}, "groundspeed_kts must be positive"},
		{"vnav too many", Vnav(), []string{"1", "2", "3", "4", "5", "6"}, "expected 4 to 5, got 6"},
		{"wind negative speed", Wind(), []string{"90", "85", "270", "-15"}, "wind_speed cannot be negative"},
		{"wind zero tas", Wind(), []string{"90", "85", "270", "15", "0"}, "tas_kts must be positive"},
		{"wind too few", Wind(), []string{"90", "85", "270"}, "expected 4 to 5, got 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, tt.cmd, tt.args...)
			if code != cli.ExitFailure {
				t.Errorf("exit code = %d, expected %d", code, cli.ExitFailure)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, expected nothing", stdout)
			}
			if !strings.Contains(stderr, tt.message) {
				t.Errorf("stderr = %s, expected to contain %q", stderr, tt.message)
			}
			if !strings.Contains(stderr, "Usage: "+tt.cmd.Name) {
				t.Errorf("stderr missing usage: %s", stderr)
			}
		})
	}
}

func TestUsageExamples(t *testing.T) {
	for _, cmd := range []cli.Command{Turn(), Vnav(), Wind()} {
		code, _, stderr := run(t, cmd, "-h")
		if code != cli.ExitOK {
			t.Errorf("%s -h exit code = %d", cmd.Name, code)
		}
		if !strings.Contains(stderr, cmd.Name+" "+cmd.Example) {
			t.Errorf("%s usage missing example:\n%s", cmd.Name, stderr)
		}
	}
}

func TestExtremeInputsStillProduceJSON(t *testing.T) {
	tests := []struct {
		name      string
		cmd       cli.Command
		args      []string
		nullField string
	}{
		{"turn huge course change", Turn(), []string{"250", "25", "1e308"}, ""},
		{"vnav overflowing altitude change", Vnav(), []string{"1e308", "-1e308", "100", "450"}, "altitude_to_lose_ft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, tt.cmd, tt.args...)
			if code != cli.ExitOK {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			m := decode(t, stdout)
			if tt.nullField != "" {
				if v, ok := m[tt.nullField]; !ok || v != nil {
					t.Errorf("%s = %v, expected null", tt.nullField, v)
				}
			}
		})
	}
}

func TestWindMagneticLogsModelDate(t *testing.T) {
	_, _, stderr := run(t, Wind(), "-log-level", "info", "-magnetic", "-lat", "45", "-lon", "-70", "-date", "2025-06-01", "90", "85", "270", "15")
	if !strings.Contains(stderr, "Magnetic model date") || !strings.Contains(stderr, "2025-06-01") {
		t.Errorf("expected the model date in the log, got: %s", stderr)
	}
}
