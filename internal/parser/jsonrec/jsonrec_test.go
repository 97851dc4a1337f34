package jsonrec

import (
	"encoding/json"
	"strings"
	"testing"
)

/*
TestDecodeAll_Array decodes the generator's shape: a top-level array of
objects with numbers preserved as json.Number.
*/
func TestDecodeAll_Array(t *testing.T) {
	in := `[
	  {"product_id": 1, "name": "Books_Product_1", "price": 12.5},
	  {"product_id": 2, "name": "Home_Product_2", "price": 499.99}
	]`

	rows, err := DecodeAll(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d; want 2", len(rows))
	}
	if got, want := rows[0]["product_id"], json.Number("1"); got != want {
		t.Fatalf("product_id=%#v; want %#v", got, want)
	}
	if got, want := rows[1]["price"], json.Number("499.99"); got != want {
		t.Fatalf("price=%#v; want %#v", got, want)
	}
}

/*
TestDecodeAll_Stream decodes an NDJSON-style object stream.
*/
func TestDecodeAll_Stream(t *testing.T) {
	in := "{\"a\": 1}\n{\"a\": 2}\n"

	rows, err := DecodeAll(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d; want 2", len(rows))
	}
}

/*
TestDecodeAll_Rejects verifies non-object top-level shapes fail.
*/
func TestDecodeAll_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"scalar", `42`},
		{"string", `"hello"`},
		{"array of scalars", `[1, 2, 3]`},
		{"truncated", `[{"a": 1}`},
	}
	for _, c := range cases {
		if _, err := DecodeAll(strings.NewReader(c.in)); err == nil {
			t.Fatalf("%s: DecodeAll succeeded; want error", c.name)
		}
	}
}

/*
TestDecodeAll_Empty returns no records for an empty stream.
*/
func TestDecodeAll_Empty(t *testing.T) {
	rows, err := DecodeAll(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows=%d; want 0", len(rows))
	}
}
