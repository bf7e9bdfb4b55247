package builder

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Document is the editor's project data (components, styles, assets). It is
// stored and returned verbatim; nothing in this package looks inside it.
type Document json.RawMessage

// ParseDocument accepts any well-formed JSON value. Empty input and a JSON
// null both yield an empty Document.
func ParseDocument(raw []byte) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, ErrInvalidDocument
	}
	return Document(bytes.Clone(trimmed)), nil
}

func (d Document) IsEmpty() bool {
	trimmed := bytes.TrimSpace(d)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// Equivalent compares two documents by value, ignoring key order and
// whitespace.
func (d Document) Equivalent(other Document) bool {
	if d.IsEmpty() || other.IsEmpty() {
		return d.IsEmpty() == other.IsEmpty()
	}
	var a, b any
	if json.Unmarshal(d, &a) != nil || json.Unmarshal(other, &b) != nil {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Markup is the flattened HTML and CSS exported from a Document. It is a
// render cache and is only ever stored alongside the Document it came from.
type Markup struct {
	HTML string `json:"htmlContent"`
	CSS  string `json:"cssContent"`
}

// Snapshot is one consistent export of the editor.
type Snapshot struct {
	Document Document `json:"data"`
	Markup
}
