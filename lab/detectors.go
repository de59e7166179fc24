package lab

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// PNRDetector models an inefficient photon-number-resolving detector with
// dark counts as a stochastic channel on photon-number probabilities:
// column n holds P(reading k | n photons present).
type PNRDetector struct {
	Efficiency float64
	DarkCounts float64
	cond       [][]float64 // cond[k][n]
}

// PNRDetector builds the detector's stochastic matrix up to the lab's
// internal PNR cutoff.
func (l *Lab) PNRDetector(efficiency, darkCounts float64) (*PNRDetector, error) {
	if efficiency < 0 || efficiency > 1 {
		return nil, fmt.Errorf("lab: detector efficiency %v outside [0, 1]", efficiency)
	}
	if darkCounts < 0 {
		return nil, fmt.Errorf("lab: negative dark counts %v", darkCounts)
	}
	cut := l.cfg.PNRInternalCutoff

	// Binomial thinning by the efficiency.
	thin := make([][]float64, cut)
	for k := range thin {
		thin[k] = make([]float64, cut)
		for n := k; n < cut; n++ {
			thin[k][n] = combin.GeneralizedBinomial(float64(n), float64(k)) *
				math.Pow(efficiency, float64(k)) * math.Pow(1-efficiency, float64(n-k))
		}
	}
	if darkCounts == 0 {
		return &PNRDetector{Efficiency: efficiency, DarkCounts: darkCounts, cond: thin}, nil
	}

	// Convolve every column with the Poisson dark-count distribution.
	pois := make([]float64, cut)
	for j := range pois {
		pois[j] = math.Exp(-darkCounts) * math.Pow(darkCounts, float64(j)) / factorial(j)
	}
	cond := make([][]float64, cut)
	for k := range cond {
		cond[k] = make([]float64, cut)
		for n := 0; n < cut; n++ {
			var p float64
			for j := 0; j <= k; j++ {
				p += pois[j] * thin[k-j][n]
			}
			cond[k][n] = p
		}
	}
	return &PNRDetector{Efficiency: efficiency, DarkCounts: darkCounts, cond: cond}, nil
}

// Apply maps true photon-number probabilities of one mode to detector
// reading probabilities.
func (d *PNRDetector) Apply(probs []float64) []float64 {
	out := make([]float64, len(d.cond))
	for k := range d.cond {
		row := d.cond[k]
		for n, p := range probs {
			if n >= len(row) {
				break
			}
			out[k] += row[n] * p
		}
	}
	return out
}

// ThresholdDetector models a click/no-click detector with efficiency and a
// dark-click probability.
type ThresholdDetector struct {
	Efficiency    float64
	DarkClickProb float64
}

// ThresholdDetector builds a threshold detector.
func (l *Lab) ThresholdDetector(efficiency, darkClickProb float64) (*ThresholdDetector, error) {
	if efficiency < 0 || efficiency > 1 {
		return nil, fmt.Errorf("lab: detector efficiency %v outside [0, 1]", efficiency)
	}
	if darkClickProb < 0 || darkClickProb > 1 {
		return nil, fmt.Errorf("lab: dark click probability %v outside [0, 1]", darkClickProb)
	}
	return &ThresholdDetector{Efficiency: efficiency, DarkClickProb: darkClickProb}, nil
}

// Apply maps one mode's photon-number probabilities to (no-click, click)
// probabilities.
func (d *ThresholdDetector) Apply(probs []float64) [2]float64 {
	var noClick float64
	for n, p := range probs {
		noClick += p * (1 - d.DarkClickProb) * math.Pow(1-d.Efficiency, float64(n))
	}
	return [2]float64{noClick, 1 - noClick}
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
