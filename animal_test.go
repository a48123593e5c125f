package animalform

import (
	"errors"
	"testing"
)

func TestFormStateSetStoresValuesVerbatim(t *testing.T) {
	inputs := []string{"", "R", "Rex", "  Rex  ", "Rex 2", "<b>Rex</b>", "Ωmega", " \ufeff", "😀"}

	for _, f := range Fields {
		for _, in := range inputs {
			var s FormState
			if err := s.Set(f, in); err != nil {
				t.Fatalf("Set(%s, %q): %v", f, in, err)
			}
			if got := s.Value(f); got != in {
				t.Errorf("Value(%s) = %q, want %q", f, got, in)
			}
		}
	}
}

func TestFormStateSetUnknownField(t *testing.T) {
	s := FormState{Name: "Rex"}
	err := s.Set(Field("age"), "3")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Set(age) = %v, want ErrUnknownField", err)
	}
	if s.Name != "Rex" {
		t.Errorf("state changed on unknown field: %+v", s)
	}
	if got := s.Value(Field("age")); got != "" {
		t.Errorf("Value(age) = %q, want empty", got)
	}
}

func TestFormStateResetIdempotent(t *testing.T) {
	s := FormState{Name: "Rex", PictureURL: "http://example.com/rex.png", Error: "x"}

	s.Reset()
	if !s.IsZero() {
		t.Fatalf("after first Reset: %+v", s)
	}
	s.Reset()
	if !s.IsZero() {
		t.Fatalf("after second Reset: %+v", s)
	}
}
