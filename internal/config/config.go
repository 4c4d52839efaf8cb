package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the calculator configuration. Every section is optional;
// Validate fills in defaults.
type Config struct {
	Logging LoggingConfig `toml:"logging"` // Diagnostic logging settings
	Station StationConfig `toml:"station"` // Reference position for magnetic variation
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
	File   string `toml:"file"`   // Optional log file (rotated); empty logs to stderr
}

// StationConfig contains the reference position used to convert magnetic
// bearings to true when no position is given on the command line
type StationConfig struct {
	Latitude         *float64 `toml:"latitude"`          // Latitude in decimal degrees
	Longitude        *float64 `toml:"longitude"`         // Longitude in decimal degrees
	ElevationFeet    float64  `toml:"elevation_ft"`      // Altitude used for the magnetic model
	MagneticHeadings bool     `toml:"magnetic_headings"` // Treat wind calculator bearings as magnetic by default
}

// HasPosition reports whether both latitude and longitude are configured
func (s StationConfig) HasPosition() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Search locations used when no path is given
var searchPaths = []string{
	"configs/mfd.toml",
	"mfd.toml",
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	// Defaults cannot fail validation
	_ = c.Validate()
	return c
}

// Load loads the configuration from the specified file path
func Load(path string) (*Config, error) {
	var config Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &config, nil
}

// LoadWithFallback loads the configuration from preferredPath if given, which
// must then exist. Otherwise the standard locations are checked in order and
// the defaults are used when none exists.
func LoadWithFallback(preferredPath string) (*Config, error) {
	if preferredPath != "" {
		config, err := Load(preferredPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", preferredPath, err)
		}
		return config, nil
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			return config, nil
		}
	}

	return Default(), nil
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid log level
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		// Valid log format
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return c.ValidateStation()
}

// ValidateStation validates the station configuration
func (c *Config) ValidateStation() error {
	if (c.Station.Latitude == nil) != (c.Station.Longitude == nil) {
		return fmt.Errorf("station latitude and longitude must be set together")
	}

	if c.Station.Latitude != nil && (*c.Station.Latitude < -90 || *c.Station.Latitude > 90) {
		return fmt.Errorf("invalid station latitude: %f", *c.Station.Latitude)
	}

	if c.Station.Longitude != nil && (*c.Station.Longitude < -180 || *c.Station.Longitude > 180) {
		return fmt.Errorf("invalid station longitude: %f", *c.Station.Longitude)
	}

	// Elevation can be negative, so we'll just check if it's within a reasonable range
	if c.Station.ElevationFeet < -2000 || c.Station.ElevationFeet > 60000 {
		return fmt.Errorf("station elevation out of typical range: %.0f ft", c.Station.ElevationFeet)
	}

	if c.Station.MagneticHeadings && !c.Station.HasPosition() {
		return fmt.Errorf("magnetic_headings requires station latitude and longitude")
	}

	return nil
}
