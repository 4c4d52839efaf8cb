// Package cli is the command-line harness shared by the calculators. A command
// declares its positional arguments, optional flags and a compute function;
// the harness handles parsing, validation, configuration, logging, usage text
// and the exit status.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yegors/mfd-calc/internal/config"
	"github.com/yegors/mfd-calc/internal/output"
	"github.com/yegors/mfd-calc/pkg/logger"
)

// Exit statuses
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Arg describes one positional argument
type Arg struct {
	Name        string
	Description string
	Optional    bool    // May be omitted; only trailing arguments can be optional
	Default     float64 // Value used when an optional argument is omitted
	Check       Check
}

// Command describes a calculator
type Command struct {
	Name        string
	Args        []Arg
	Example     string // Positional arguments of an example invocation
	ExampleNote string
	Version     string // Reported in debug logs

	// Flags registers command-specific flags, may be nil
	Flags func(fs *flag.FlagSet)
	// Run computes the result from validated arguments
	Run func(env *Env, in Values) (*output.Object, error)
}

// Env is what a command gets besides its arguments
type Env struct {
	Config *config.Config
	Log    *logger.Logger
}

// Values holds parsed positional arguments by name
type Values struct {
	vals  map[string]float64
	given map[string]bool
}

// Get returns the named value, or its default when it was omitted
func (v Values) Get(name string) float64 {
	return v.vals[name]
}

// Has reports whether the named argument was given
func (v Values) Has(name string) bool {
	return v.given[name]
}

// Main runs cmd with the given arguments (without the program name) and returns
// the process exit status. Results go to stdout; errors, usage and logs to stderr.
func Main(cmd Command, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "Path to configuration file (optional - will search in configs/ and the working directory)")
	logLevel := fs.String("log-level", "", "Log level override: debug, info, warn or error")
	logFormat := fs.String("log-format", "", "Log format override: console or json")
	if cmd.Flags != nil {
		cmd.Flags(fs)
	}

	flagArgs, positional := splitArgs(fs, args)
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cmd.usage(stderr, fs)
			return ExitOK
		}
		return fail(cmd, fs, stderr, err)
	}

	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return ExitFailure
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return ExitFailure
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
		Output: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return ExitFailure
	}
	defer log.Sync()
	log = log.Named(cmd.Name).With(logger.String("version", cmd.Version))

	in, err := cmd.parse(positional)
	if err != nil {
		log.Debug("Rejected arguments", logger.Strings("args", positional), logger.Error(err))
		return fail(cmd, fs, stderr, err)
	}

	log.Debug("Calculating", logger.Any("inputs", in.vals))

	result, err := cmd.Run(&Env{Config: cfg, Log: log}, in)
	if err != nil {
		log.WithError(err).Error("Calculation failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFailure
	}

	if err := result.Write(stdout); err != nil {
		log.Error("Failed to write result", logger.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFailure
	}

	return ExitOK
}

func fail(cmd Command, fs *flag.FlagSet, stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	cmd.usage(stderr, fs)
	return ExitFailure
}

// parse converts positional tokens into named values
func (c Command) parse(tokens []string) (Values, error) {
	in := Values{
		vals:  make(map[string]float64, len(c.Args)),
		given: make(map[string]bool, len(c.Args)),
	}

	required := 0
	for _, a := range c.Args {
		if !a.Optional {
			required++
		}
	}
	if len(tokens) < required || len(tokens) > len(c.Args) {
		want := strconv.Itoa(required)
		if required != len(c.Args) {
			want = fmt.Sprintf("%d to %d", required, len(c.Args))
		}
		return in, fmt.Errorf("%w: expected %s, got %d", ErrInvalidArgumentCount, want, len(tokens))
	}

	for i, a := range c.Args {
		if i >= len(tokens) {
			in.vals[a.Name] = a.Default
			continue
		}

		tok := tokens[i]
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return in, &InvalidValueError{Arg: a.Name, Token: tok, Reason: "is not a valid decimal number", Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return in, &InvalidValueError{Arg: a.Name, Token: tok, Reason: "must be finite"}
		}
		if a.Check != nil {
			if err := a.Check(v); err != nil {
				return in, &InvalidValueError{Arg: a.Name, Token: tok, Reason: err.Error()}
			}
		}

		in.vals[a.Name] = v
		in.given[a.Name] = true
	}

	return in, nil
}

// splitArgs separates flags (and their values) from positional arguments.
// Negative numbers are positional, and "--" ends flag processing.
func splitArgs(fs *flag.FlagSet, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if !isFlagToken(a) {
			positional = append(positional, a)
			continue
		}

		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil || isBoolFlag(f) {
			continue
		}
		if i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	return flags, positional
}

func isFlagToken(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err != nil
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// usage prints the usage text for the command
func (c Command) usage(w io.Writer, fs *flag.FlagSet) {
	var sb strings.Builder
	width := 0
	for _, a := range c.Args {
		if a.Optional {
			fmt.Fprintf(&sb, " [%s]", a.Name)
		} else {
			fmt.Fprintf(&sb, " <%s>", a.Name)
		}
		width = max(width, len(a.Name))
	}

	fmt.Fprintf(w, "Usage: %s [flags]%s\n\n", c.Name, sb.String())
	fmt.Fprintf(w, "Arguments:\n")
	for _, a := range c.Args {
		desc := a.Description
		if a.Optional {
			desc += " (optional)"
		}
		fmt.Fprintf(w, "  %-*s : %s\n", width, a.Name, desc)
	}

	fmt.Fprintf(w, "\nFlags:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)

	if c.Example != "" {
		fmt.Fprintf(w, "\nExample:\n  %s %s\n", c.Name, c.Example)
		if c.ExampleNote != "" {
			fmt.Fprintf(w, "  (%s)\n", c.ExampleNote)
		}
	}
}
