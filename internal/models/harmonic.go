package models

import "time"

// HarmonicModel is a station's coefficient bundle as produced by an offline
// harmonic solve. It is treated as read-only once loaded.
type HarmonicModel struct {
	StationID  string      `json:"-"`
	Names      []string    `json:"name"`
	Amplitudes []float64   `json:"A"`
	Phases     []float64   `json:"g"`
	Aux        HarmonicAux `json:"aux"`
	Mean       float64     `json:"mean"`
}

// HarmonicAux carries solve metadata. Frequencies are in cycles per hour and
// may be empty, in which case consumers fall back to standard speeds.
type HarmonicAux struct {
	Frequencies   []float64 `json:"frq,omitempty"`
	ReferenceTime time.Time `json:"reftime"`
	Latitude      float64   `json:"lat"`
}

// Constituents returns the number of constituents in the model.
func (m *HarmonicModel) Constituents() int {
	return len(m.Names)
}
