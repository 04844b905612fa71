package material

import (
	"encoding/json"
	"fmt"
)

// envelope wraps the material payload with its type tag so FromJSON
// can pick the concrete type back.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"material"`
}

// ToJSON persists a material class. The field names are stable wire
// keys, content under version control must not churn when nothing
// changed.
func ToJSON(m Material) ([]byte, error) {
	var kind string
	switch m.(type) {
	case *Color:
		kind = "color"
	case *Gradient:
		kind = "gradient"
	case *Texture:
		kind = "texture"
	default:
		return nil, fmt.Errorf("unsupported material type %T", m)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize material: %w", err)
	}
	return json.MarshalIndent(&envelope{Type: kind, Data: data}, "", "  ")
}

// FromJSON restores a material class persisted with ToJSON.
func FromJSON(data []byte) (Material, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse material: %w", err)
	}
	var m Material
	switch env.Type {
	case "color":
		m = &Color{}
	case "gradient":
		m = &Gradient{}
	case "texture":
		m = &Texture{}
	default:
		return nil, fmt.Errorf("unknown material type %q", env.Type)
	}
	if err := json.Unmarshal(env.Data, m); err != nil {
		return nil, fmt.Errorf("failed to parse %s material: %w", env.Type, err)
	}
	return m, nil
}
