package model

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode is returned when a model payload cannot be decoded
var ErrDecode = errors.New("malformed model payload")

// Decode reads a transferred model: a base64-encoded JSON mapping from
// shape id to shape. The resulting scene replaces any prior one.
func Decode(raw []byte) (*Scene, error) {
	data := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
	n, err := base64.StdEncoding.Decode(data, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var shapes map[string]*Shape
	if err := json.Unmarshal(data[:n], &shapes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	for id, shape := range shapes {
		if shape == nil {
			return nil, fmt.Errorf("%w: shape %q is null", ErrDecode, id)
		}
		if err := shape.validate(); err != nil {
			return nil, fmt.Errorf("%w: shape %q: %v", ErrDecode, id, err)
		}
	}

	return NewScene(shapes), nil
}
