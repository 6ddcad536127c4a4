package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Identifiable is implemented by records that can be referenced by id.
type Identifiable interface {
	Identity() string
}

// Ref is a cross-record reference that is either a bare identifier or an
// embedded copy of the referenced record. Value is nil for bare identifiers.
type Ref[T Identifiable] struct {
	ID    string
	Value *T
}

// RefID builds a bare identifier reference.
func RefID[T Identifiable](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// RefTo builds an embedded reference.
func RefTo[T Identifiable](v T) Ref[T] {
	return Ref[T]{ID: v.Identity(), Value: &v}
}

// Embedded reports whether the reference carries the full record.
func (r Ref[T]) Embedded() bool {
	return r.Value != nil
}

// IsZero reports whether the reference points at nothing.
func (r Ref[T]) IsZero() bool {
	return r.ID == "" && r.Value == nil
}

// MarshalJSON writes embedded references as objects and bare ones as strings.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts an object, a string id, a numeric id or null.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = Ref[T]{}
		return nil
	}

	switch data[0] {
	case '{':
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("embedded reference: %w", err)
		}
		*r = RefTo(v)
		return nil
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = RefID[T](id)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reference must be an id or an object, got %s", data)
	}
	if v, err := n.Int64(); err == nil {
		*r = RefID[T](strconv.FormatInt(v, 10))
		return nil
	}
	return fmt.Errorf("reference id must be an integer, got %s", data)
}
