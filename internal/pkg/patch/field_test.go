package patch

import (
	"encoding/json"
	"testing"
)

type body struct {
	Photo Field[string] `json:"photo"`
}

func TestFieldDistinguishesAbsentNullAndValue(t *testing.T) {
	var absent body
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal absent: %v", err)
	}
	if absent.Photo.Set {
		t.Fatalf("absent field reported as set")
	}

	var null body
	if err := json.Unmarshal([]byte(`{"photo":null}`), &null); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !null.Photo.Set || !null.Photo.Null || null.Photo.Ptr() != nil {
		t.Fatalf("null field: %+v", null.Photo)
	}

	var val body
	if err := json.Unmarshal([]byte(`{"photo":"tmp/a/b.png"}`), &val); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if p := val.Photo.Ptr(); p == nil || *p != "tmp/a/b.png" {
		t.Fatalf("value field: %+v", val.Photo)
	}
}
