package bind

import (
	"errors"
	"testing"

	perr "unirank/internal/platform/errors"
)

type listInput struct {
	Country   string `param:"country" validate:"max=5"`
	SortOrder string `param:"sortOrder" validate:"omitempty,oneof=ASC DESC"`
	Page      int    `json:"page,omitempty" validate:"omitempty,min=1"`
	Cohort    int    `validate:"omitempty,year"`
}

func TestStruct_Messages(t *testing.T) {
	cases := []struct {
		name      string
		in        listInput
		wantField string
		wantMsg   string
	}{
		{"param tag names the field", listInput{Country: "Switzerland"}, "country", "country must be at most 5"},
		{"oneof", listInput{SortOrder: "UP"}, "sortOrder", "sortOrder must be one of [ASC DESC]"},
		{"json tag fallback", listInput{Page: -2}, "page", "page must be at least 1"},
		{"go name fallback", listInput{Cohort: 1850}, "Cohort", "Cohort must be a year between 1900 and 2100"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Struct(c.in)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("code = %v", perr.CodeOf(err))
			}
			w := perr.WireFrom(err)
			if w.Message != c.wantMsg {
				t.Fatalf("message = %q want %q", w.Message, c.wantMsg)
			}
			if w.Field != c.wantField {
				t.Fatalf("field = %q want %q", w.Field, c.wantField)
			}
		})
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(listInput{Country: "UK", SortOrder: "DESC", Page: 3, Cohort: 2024}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Struct(listInput{}); err != nil {
		t.Fatalf("zero input should pass: %v", err)
	}
}

func TestStruct_InvalidTarget(t *testing.T) {
	if err := Struct(42); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("non-struct should map to a validation error, got %v", err)
	}
}

func TestFieldAndMessage_Foreign(t *testing.T) {
	field, msg := FieldAndMessage(errors.New("boom"))
	if field != "" || msg != "boom" {
		t.Fatalf("got field=%q msg=%q", field, msg)
	}
	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil should be empty")
	}
}
