// Package settings holds the global numerical conventions the library
// reads but does not own: the hbar convention, Fock cutoff policy, and the
// internal cutoff used by photon-counting detectors.
//
// Settings are plain values. Construct them once, pass them where needed.
// Defaults match the usual quantum-optics conventions (hbar = 2).
package settings

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Settings collects the configuration values consumed by the physics layers.
type Settings struct {
	// HBar is the value of hbar used by all phase-space conversions.
	HBar float64 `yaml:"hbar"`

	// AutocutoffMin and AutocutoffMax bound the per-mode Fock cutoff chosen
	// automatically from photon-number statistics.
	AutocutoffMin int `yaml:"autocutoff_min"`
	AutocutoffMax int `yaml:"autocutoff_max"`

	// AutocutoffStdevFactor is the number of photon-number standard
	// deviations added to the mean when choosing a cutoff.
	AutocutoffStdevFactor float64 `yaml:"autocutoff_stdev_factor"`

	// PNRInternalCutoff is the Fock cutoff used internally when building
	// photon-number-resolving detector stochastic channels.
	PNRInternalCutoff int `yaml:"pnr_internal_cutoff"`

	// HomodyneSqueezing is the squeezing magnitude used to approximate an
	// ideal homodyne projector with a finitely squeezed state.
	HomodyneSqueezing float64 `yaml:"homodyne_squeezing"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		HBar:                  2.0,
		AutocutoffMin:         1,
		AutocutoffMax:         100,
		AutocutoffStdevFactor: 5.0,
		PNRInternalCutoff:     50,
		HomodyneSqueezing:     10.0,
	}
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.HBar <= 0 {
		return fmt.Errorf("settings: hbar must be positive, got %v", s.HBar)
	}
	if s.AutocutoffMin < 1 {
		return fmt.Errorf("settings: autocutoff_min must be >= 1, got %d", s.AutocutoffMin)
	}
	if s.AutocutoffMax < s.AutocutoffMin {
		return fmt.Errorf("settings: autocutoff_max (%d) < autocutoff_min (%d)",
			s.AutocutoffMax, s.AutocutoffMin)
	}
	if s.PNRInternalCutoff < 2 {
		return fmt.Errorf("settings: pnr_internal_cutoff must be >= 2, got %d", s.PNRInternalCutoff)
	}
	return nil
}

// LoadFile reads settings from a YAML file, starting from the defaults.
func LoadFile(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// FromEnv returns the defaults overridden by LATTICA_* environment
// variables. A .env file in the working directory is honored when present.
//
// Recognized variables: LATTICA_HBAR, LATTICA_AUTOCUTOFF_MIN,
// LATTICA_AUTOCUTOFF_MAX, LATTICA_PNR_INTERNAL_CUTOFF.
func FromEnv() (Settings, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("settings: loaded .env")
	}
	s := Default()
	if v, ok := os.LookupEnv("LATTICA_HBAR"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return s, fmt.Errorf("settings: LATTICA_HBAR: %w", err)
		}
		s.HBar = f
	}
	for _, ev := range []struct {
		name string
		dst  *int
	}{
		{"LATTICA_AUTOCUTOFF_MIN", &s.AutocutoffMin},
		{"LATTICA_AUTOCUTOFF_MAX", &s.AutocutoffMax},
		{"LATTICA_PNR_INTERNAL_CUTOFF", &s.PNRInternalCutoff},
	} {
		if v, ok := os.LookupEnv(ev.name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return s, fmt.Errorf("settings: %s: %w", ev.name, err)
			}
			*ev.dst = n
		}
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
