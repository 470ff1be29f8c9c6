package scene

import (
	"encoding/json"
)

// elementAlias avoids recursing into Element's custom codec.
type elementAlias Element

// knownKeys are the wire fields the Element struct models. Everything else
// is carried in Extra so style attributes the pipeline does not interpret
// survive normalization.
var knownKeys = map[string]bool{
	"id": true, "type": true,
	"x": true, "y": true, "width": true, "height": true,
	"points": true,
	"label":  true, "text": true, "fontSize": true,
	"groupIds": true, "containerId": true, "boundElements": true,
	"startBinding": true, "endBinding": true,
	"startArrowhead": true, "endArrowhead": true,
	"seed": true, "versionNonce": true,
	"ids": true,
}

// UnmarshalJSON decodes the modeled fields and stashes every unrecognized
// key into Extra verbatim.
func (e *Element) UnmarshalJSON(data []byte) error {
	var alias elementAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownKeys[k] {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}
	*e = Element(alias)
	e.Extra = raw
	return nil
}

// MarshalJSON re-emits the modeled fields merged with the preserved extras.
// Modeled fields win on key collisions.
func (e *Element) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(elementAlias(*e))
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return known, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// ParseElements strictly parses a complete element array. Used for finalized
// payloads where a malformed document is a caller-visible error.
func ParseElements(raw string) ([]*Element, error) {
	var els []*Element
	if err := json.Unmarshal([]byte(raw), &els); err != nil {
		return nil, err
	}
	return els, nil
}

// MarshalElements serializes an element array back to its wire form.
func MarshalElements(els []*Element) ([]byte, error) {
	if els == nil {
		els = []*Element{}
	}
	return json.Marshal(els)
}
