package csv

import (
	"reflect"
	"strings"
	"testing"
)

/*
TestReadAll verifies header canonicalization, nil for empty cells, and that
values stay strings for the transform stage to coerce.
*/
func TestReadAll(t *testing.T) {
	in := "Customer ID,Name,Signup Date\n1,Customer_1,2023-01-01\n2,,2023-01-02\n"

	header, rows, err := ReadAll(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if want := []string{"customer_id", "name", "signup_date"}; !reflect.DeepEqual(header, want) {
		t.Fatalf("header=%v; want %v", header, want)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d; want 2", len(rows))
	}
	if got := rows[0]["customer_id"]; got != "1" {
		t.Fatalf("rows[0][customer_id]=%#v; want %q", got, "1")
	}
	if got := rows[1]["name"]; got != nil {
		t.Fatalf("rows[1][name]=%#v; want nil for empty cell", got)
	}
}

/*
TestReadAll_TrimSpace verifies TrimSpace turns whitespace-only cells into
nil and strips padding from values.
*/
func TestReadAll_TrimSpace(t *testing.T) {
	in := "a,b\n x , \n"

	_, rows, err := ReadAll(strings.NewReader(in), Options{TrimSpace: true})
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got := rows[0]["a"]; got != "x" {
		t.Fatalf("rows[0][a]=%#v; want %q", got, "x")
	}
	if got := rows[0]["b"]; got != nil {
		t.Fatalf("rows[0][b]=%#v; want nil", got)
	}
}

/*
TestReadAll_Errors verifies strictness: missing header, a short row, and a
malformed quote each abort the whole file.
*/
func TestReadAll_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"short row", "a,b,c\n1,2\n"},
		{"bare quote", "a,b\n\"x,2\n1,\"y\"z\n"},
	}
	for _, c := range cases {
		if _, _, err := ReadAll(strings.NewReader(c.in), Options{}); err == nil {
			t.Fatalf("%s: ReadAll succeeded; want error", c.name)
		}
	}
}

/*
TestReadAll_Semicolon verifies the delimiter option.
*/
func TestReadAll_Semicolon(t *testing.T) {
	in := "a;b\n1;2\n"

	header, rows, err := ReadAll(strings.NewReader(in), Options{Comma: ';'})
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(header, want) {
		t.Fatalf("header=%v; want %v", header, want)
	}
	if got := rows[0]["b"]; got != "2" {
		t.Fatalf("rows[0][b]=%#v; want %q", got, "2")
	}
}
