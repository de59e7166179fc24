// Package main provides the Lattica CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lattica-dev/lattica/lab"
	"github.com/lattica-dev/lattica/settings"
)

const version = "v0.1.0-dev"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "version":
		fmt.Printf("Lattica %s\n", version)
	case "settings":
		showSettings()
	case "demo":
		if err := demo(); err != nil {
			log.Fatal().Err(err).Msg("demo failed")
		}
	default:
		fmt.Println("Lattica - Continuous-Variable Quantum Optics for Go")
		fmt.Printf("Version: %s\n\n", version)
		fmt.Println("Commands:")
		fmt.Println("  version    Show version")
		fmt.Println("  settings   Show effective settings (env overrides applied)")
		fmt.Println("  demo       Run a small squeezing-and-detection example")
	}
}

func showSettings() {
	cfg, err := settings.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	fmt.Printf("hbar:                    %v\n", cfg.HBar)
	fmt.Printf("autocutoff_min:          %d\n", cfg.AutocutoffMin)
	fmt.Printf("autocutoff_max:          %d\n", cfg.AutocutoffMax)
	fmt.Printf("autocutoff_stdev_factor: %v\n", cfg.AutocutoffStdevFactor)
	fmt.Printf("pnr_internal_cutoff:     %d\n", cfg.PNRInternalCutoff)
	fmt.Printf("homodyne_squeezing:      %v\n", cfg.HomodyneSqueezing)
}

// demo prepares a two-mode squeezed vacuum, splits it with a beam
// splitter, and prints the photon-number distribution seen by a lossy PNR
// detector on mode 0.
func demo() error {
	l := lab.Default()

	psi := l.TwoModeSqueezedVacuum(0.8, 0)
	bs := l.BSgate(0.5, 0, 0, 1)
	out, err := psi.Apply(bs)
	if err != nil {
		return err
	}

	const cutoff = 10
	probs, err := out.Probabilities(cutoff)
	if err != nil {
		return err
	}
	marginal := make([]float64, cutoff)
	for i, p := range probs.Data() {
		marginal[i/cutoff] += real(p)
	}

	det, err := l.PNRDetector(0.85, 0.01)
	if err != nil {
		return err
	}
	seen := det.Apply(marginal)

	log.Info().Float64("squeezing", 0.8).Float64("efficiency", 0.85).Msg("demo")
	for n, p := range seen {
		if p < 1e-6 {
			continue
		}
		fmt.Printf("P(n=%d) = %.6f\n", n, p)
	}
	return nil
}
