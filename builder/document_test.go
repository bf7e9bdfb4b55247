package builder

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		empty   bool
		wantErr error
	}{
		{name: "object", input: `{"pages":[{"component":"<p>Hi</p>"}]}`},
		{name: "surrounding whitespace", input: "  {\"a\":1}\n"},
		{name: "empty input", input: "", empty: true},
		{name: "json null", input: "null", empty: true},
		{name: "malformed", input: `{"pages":`, wantErr: ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
			if err == nil && doc.IsEmpty() != tt.empty {
				t.Fatalf("unexpected emptiness: got=%v want=%v", doc.IsEmpty(), tt.empty)
			}
		})
	}
}

func TestDocumentIsOpaque(t *testing.T) {
	raw := `{"assets":[],"styles":[{"selectors":["#i1"],"style":{"color":"red"}}],"pages":[{"frames":[]}],"x-custom":{"kept":true}}`

	var snap Snapshot
	if err := json.Unmarshal([]byte(`{"data":`+raw+`,"htmlContent":"<p>x</p>","cssContent":""}`), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(snap.Document) != raw {
		t.Fatalf("document was altered:\n got=%s\nwant=%s", snap.Document, raw)
	}

	out, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Snapshot
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if !back.Document.Equivalent(snap.Document) {
		t.Fatalf("round trip changed the document: %s", back.Document)
	}
}

func TestDocumentEquivalentIgnoresKeyOrder(t *testing.T) {
	a := Document(`{"a":1,"b":{"c":[1,2]}}`)
	b := Document(`{ "b": {"c": [1, 2]}, "a": 1 }`)
	c := Document(`{"a":1,"b":{"c":[2,1]}}`)

	if !a.Equivalent(b) {
		t.Fatal("expected documents with reordered keys to be equivalent")
	}
	if a.Equivalent(c) {
		t.Fatal("expected documents with reordered array items to differ")
	}
	if !Document(nil).Equivalent(Document("null")) {
		t.Fatal("expected empty documents to be equivalent")
	}
}
