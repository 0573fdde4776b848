package spatialmath

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Vectors marshal as the 3-element array [x, y, z] and quaternions as the
// 4-element array [w, x, y, z]. Frames marshal as an object with "position"
// and "orientation" fields holding each part's own encoding. Decoding
// rejects data of the wrong shape and never leaves a receiver partially
// assigned; round-trips reproduce the input bit for bit.

// MarshalJSON encodes v as [x, y, z].
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

// UnmarshalJSON decodes a [x, y, z] array into v.
func (v *Vector) UnmarshalJSON(data []byte) error {
	components, err := decodeComponents(data, 3, "vector")
	if err != nil {
		return err
	}
	*v = Vector{components[0], components[1], components[2]}
	return nil
}

// MarshalJSON encodes q as [w, x, y, z].
func (q Quaternion) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{q.Real, q.Imag.X, q.Imag.Y, q.Imag.Z})
}

// UnmarshalJSON decodes a [w, x, y, z] array into q.
func (q *Quaternion) UnmarshalJSON(data []byte) error {
	components, err := decodeComponents(data, 4, "quaternion")
	if err != nil {
		return err
	}
	*q = NewQuaternion(components[0], components[1], components[2], components[3])
	return nil
}

func decodeComponents(data []byte, arity int, typeName string) ([]float64, error) {
	var components []float64
	if err := json.Unmarshal(data, &components); err != nil {
		return nil, errors.Wrapf(err, "cannot decode %s", typeName)
	}
	if len(components) != arity {
		return nil, errors.Errorf("cannot decode %s: expected %d components, got %d", typeName, arity, len(components))
	}
	return components, nil
}

type frameConfig struct {
	Position    json.RawMessage `json:"position"`
	Orientation json.RawMessage `json:"orientation"`
}

// MarshalJSON encodes f as {"position": [...], "orientation": [...]}.
func (f Frame) MarshalJSON() ([]byte, error) {
	position, err := json.Marshal(f.Position)
	if err != nil {
		return nil, err
	}
	orientation, err := json.Marshal(f.Orientation)
	if err != nil {
		return nil, err
	}
	return json.Marshal(frameConfig{Position: position, Orientation: orientation})
}

// UnmarshalJSON decodes a {"position": ..., "orientation": ...} object into
// f. Both fields are required; failures in the two are reported together.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var config frameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, "cannot decode frame")
	}

	var position Vector
	var orientation Quaternion
	positionErr := errors.New("cannot decode frame: missing position")
	if config.Position != nil {
		positionErr = position.UnmarshalJSON(config.Position)
	}
	orientationErr := errors.New("cannot decode frame: missing orientation")
	if config.Orientation != nil {
		orientationErr = orientation.UnmarshalJSON(config.Orientation)
	}
	if err := multierr.Combine(positionErr, orientationErr); err != nil {
		return err
	}

	*f = Frame{Position: position, Orientation: orientation}
	return nil
}
