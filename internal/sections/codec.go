package sections

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingType = errors.New("sections: section type is required")

type wireSection struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// MarshalJSON encodes the section as {"id","type","content"}.
func (s Section) MarshalJSON() ([]byte, error) {
	wire := wireSection{ID: s.ID, Type: s.Type}
	switch payload := s.Payload.(type) {
	case nil:
	case Unknown:
		if len(payload.Raw) > 0 {
			wire.Content = json.RawMessage(payload.Raw)
		}
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("sections: encode %s payload: %w", s.Type, err)
		}
		wire.Content = raw
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the payload into the struct fixed by the type.
// Fields foreign to the type are ignored; unknown types keep their raw content.
func (s *Section) UnmarshalJSON(data []byte) error {
	var wire wireSection
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("sections: decode section: %w", err)
	}
	if wire.Type == "" {
		return ErrMissingType
	}
	payload, err := decodePayload(wire.Type, wire.Content)
	if err != nil {
		return fmt.Errorf("sections: decode %s section %q: %w", wire.Type, wire.ID, err)
	}
	*s = Section{ID: wire.ID, Type: wire.Type, Payload: payload}
	return nil
}

func decodePayload(kind Type, raw json.RawMessage) (Payload, error) {
	if !kind.Known() {
		return Unknown{Kind: kind, Raw: bytes.Clone(raw)}, nil
	}
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return Default(kind), nil
	}
	switch kind {
	case TypeHero:
		return decodeInto[Hero](raw)
	case TypeText:
		return decodeInto[Text](raw)
	case TypeRichText:
		return decodeInto[RichText](raw)
	case TypeImage:
		return decodeInto[Image](raw)
	case TypeGallery:
		return decodeInto[Gallery](raw)
	case TypeFeatures:
		return decodeInto[Features](raw)
	case TypeFAQ:
		return decodeInto[FAQ](raw)
	case TypeCTA:
		return decodeInto[CTA](raw)
	case TypeColumns:
		return decodeInto[Columns](raw)
	case TypeHTML:
		return decodeInto[HTML](raw)
	}
	return Unknown{Kind: kind, Raw: bytes.Clone(raw)}, nil
}

func decodeInto[T Payload](raw json.RawMessage) (Payload, error) {
	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Decode parses a JSON array of sections.
func Decode(data []byte) ([]Section, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var out []Section
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Encode renders sections as a JSON array; nil encodes as [].
func Encode(list []Section) ([]byte, error) {
	if list == nil {
		list = []Section{}
	}
	return json.Marshal(list)
}
