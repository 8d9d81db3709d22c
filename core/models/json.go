package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Every model encodes with a "__model__" field naming its type, followed by its
// non-zero fields. Decoding accepts a missing discriminator but rejects a wrong one.

func (a Artist) MarshalJSON() ([]byte, error) {
	type alias Artist
	return marshalModel("Artist", alias(a))
}

func (a *Artist) UnmarshalJSON(data []byte) error {
	type alias Artist
	return unmarshalModel(data, "Artist", (*alias)(a))
}

// Serialize returns the model as a generic map, as it would appear in JSON.
func (a Artist) Serialize() map[string]any { return serialize(a) }

func (a Album) MarshalJSON() ([]byte, error) {
	type alias Album
	return marshalModel("Album", alias(a))
}

func (a *Album) UnmarshalJSON(data []byte) error {
	type alias Album
	return unmarshalModel(data, "Album", (*alias)(a))
}

// Serialize returns the model as a generic map, as it would appear in JSON.
func (a Album) Serialize() map[string]any { return serialize(a) }

func (t Track) MarshalJSON() ([]byte, error) {
	type alias Track
	return marshalModel("Track", alias(t))
}

func (t *Track) UnmarshalJSON(data []byte) error {
	type alias Track
	return unmarshalModel(data, "Track", (*alias)(t))
}

// Serialize returns the model as a generic map, as it would appear in JSON.
func (t Track) Serialize() map[string]any { return serialize(t) }

func (t TlTrack) MarshalJSON() ([]byte, error) {
	type alias TlTrack
	return marshalModel("TlTrack", alias(t))
}

func (t *TlTrack) UnmarshalJSON(data []byte) error {
	type alias TlTrack
	return unmarshalModel(data, "TlTrack", (*alias)(t))
}

// Serialize returns the model as a generic map, as it would appear in JSON.
func (t TlTrack) Serialize() map[string]any { return serialize(t) }

func (p Playlist) MarshalJSON() ([]byte, error) {
	type alias Playlist
	return marshalModel("Playlist", alias(p))
}

func (p *Playlist) UnmarshalJSON(data []byte) error {
	type alias Playlist
	return unmarshalModel(data, "Playlist", (*alias)(p))
}

// Serialize returns the model as a generic map, as it would appear in JSON.
func (p Playlist) Serialize() map[string]any { return serialize(p) }

func (i Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return marshalModel("Image", alias(i))
}

func (i *Image) UnmarshalJSON(data []byte) error {
	type alias Image
	return unmarshalModel(data, "Image", (*alias)(i))
}

// Serialize returns the model as a generic map, as it would appear in JSON.
func (i Image) Serialize() map[string]any { return serialize(i) }

func (r Ref) MarshalJSON() ([]byte, error) {
	type alias Ref
	return marshalModel("Ref", alias(r))
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	type alias Ref
	return unmarshalModel(data, "Ref", (*alias)(r))
}

// Serialize returns the model as a generic map, as it would appear in JSON.
func (r Ref) Serialize() map[string]any { return serialize(r) }

func marshalModel(model string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	name, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(name) + 16)
	buf.WriteString(`{"__model__":`)
	buf.Write(name)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

func unmarshalModel(data []byte, model string, v any) error {
	var tag struct {
		Model string `json:"__model__"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	if tag.Model != "" && tag.Model != model {
		return fmt.Errorf("%w: want %s, got %s", ErrModelMismatch, model, tag.Model)
	}
	return json.Unmarshal(data, v)
}

func serialize(m json.Marshaler) map[string]any {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
