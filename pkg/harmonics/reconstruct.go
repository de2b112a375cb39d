// Package harmonics reconstructs tidal heights from solved harmonic
// coefficients.
package harmonics

import (
	"fmt"
	"math"
	"time"

	"github.com/bbernstein/tidecal/internal/models"
)

// ConstituentReconstructor sums constituent cosines:
//
//	η(t) = Σ A_k cos(2π f_k Δt - g_k)
//
// where Δt is hours since the model's reference time, f_k is in cycles per
// hour and g_k is the phase lag in degrees. The result is the deviation from
// the model mean. No nodal correction is applied.
type ConstituentReconstructor struct{}

func NewConstituentReconstructor() *ConstituentReconstructor {
	return &ConstituentReconstructor{}
}

// Reconstruct returns one deviation per instant.
func (r *ConstituentReconstructor) Reconstruct(instants []time.Time, model *models.HarmonicModel) ([]float64, error) {
	if model == nil {
		return nil, fmt.Errorf("nil harmonic model")
	}
	freqs, err := frequencies(model)
	if err != nil {
		return nil, err
	}

	phases := make([]float64, len(model.Phases))
	for i, g := range model.Phases {
		phases[i] = g * math.Pi / 180
	}

	heights := make([]float64, len(instants))
	for i, t := range instants {
		dt := t.Sub(model.Aux.ReferenceTime).Hours()
		var h float64
		for k, a := range model.Amplitudes {
			h += a * math.Cos(2*math.Pi*freqs[k]*dt-phases[k])
		}
		heights[i] = h
	}
	return heights, nil
}

func frequencies(model *models.HarmonicModel) ([]float64, error) {
	n := len(model.Names)
	if len(model.Amplitudes) != n || len(model.Phases) != n {
		return nil, fmt.Errorf("coefficient length mismatch: %d names, %d amplitudes, %d phases",
			n, len(model.Amplitudes), len(model.Phases))
	}
	if len(model.Aux.Frequencies) == n {
		return model.Aux.Frequencies, nil
	}
	if len(model.Aux.Frequencies) != 0 {
		return nil, fmt.Errorf("coefficient length mismatch: %d names, %d frequencies", n, len(model.Aux.Frequencies))
	}

	freqs := make([]float64, n)
	for i, name := range model.Names {
		f, ok := FrequencyOf(name)
		if !ok {
			return nil, fmt.Errorf("unknown constituent %q and no frequency given", name)
		}
		freqs[i] = f
	}
	return freqs, nil
}
