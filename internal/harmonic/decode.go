package harmonic

import (
	"encoding/json"
	"fmt"

	"github.com/bbernstein/tidecal/internal/models"
)

var requiredFields = []string{"name", "A", "g", "aux", "mean"}

// DecodeModel parses a model document. Missing required fields are reported
// together in a single ModelLoadError.
func DecodeModel(stationID string, data []byte) (*models.HarmonicModel, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewModelLoadError(stationID, fmt.Errorf("decoding model: %w", err))
	}

	var missing []string
	for _, field := range requiredFields {
		if v, ok := raw[field]; !ok || string(v) == "null" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &ModelLoadError{StationID: stationID, MissingFields: missing}
	}

	var model models.HarmonicModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, NewModelLoadError(stationID, fmt.Errorf("decoding model: %w", err))
	}
	model.StationID = stationID

	n := len(model.Names)
	if n == 0 {
		return nil, NewModelLoadError(stationID, fmt.Errorf("model has no constituents"))
	}
	if len(model.Amplitudes) != n || len(model.Phases) != n {
		return nil, NewModelLoadError(stationID, fmt.Errorf("coefficient length mismatch: %d names, %d amplitudes, %d phases",
			n, len(model.Amplitudes), len(model.Phases)))
	}
	if f := len(model.Aux.Frequencies); f != 0 && f != n {
		return nil, NewModelLoadError(stationID, fmt.Errorf("frequency length mismatch: %d names, %d frequencies", n, f))
	}
	if model.Aux.ReferenceTime.IsZero() {
		return nil, &ModelLoadError{StationID: stationID, MissingFields: []string{"aux.reftime"}}
	}

	return &model, nil
}
