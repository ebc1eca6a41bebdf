package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to another entity. It always carries the referenced ID;
// Doc is filled in once the repository resolves the reference at read time.
//
// An unresolved Ref encodes as the bare ID string, a resolved one as the
// embedded summary object. Both forms are accepted when decoding.
type Ref[T any] struct {
	ID  string
	Doc *T
}

// RefTo returns an unresolved reference to id.
func RefTo[T any](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// Resolved reports whether the referenced summary has been embedded.
func (r Ref[T]) Resolved() bool {
	return r.Doc != nil
}

// MarshalJSON implements json.Marshaler.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = Ref[T]{}
		return nil
	case len(data) > 0 && data[0] == '"':
		*r = Ref[T]{}
		return json.Unmarshal(data, &r.ID)
	}

	var id struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	doc := new(T)
	if err := json.Unmarshal(data, doc); err != nil {
		return err
	}
	*r = Ref[T]{ID: id.ID, Doc: doc}
	return nil
}

// RefsTo wraps ids as unresolved references, preserving order.
func RefsTo[T any](ids []string) []Ref[T] {
	refs := make([]Ref[T], 0, len(ids))
	for _, id := range ids {
		refs = append(refs, RefTo[T](id))
	}
	return refs
}

// RefIDs returns the referenced ids in order.
func RefIDs[T any](refs []Ref[T]) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}
