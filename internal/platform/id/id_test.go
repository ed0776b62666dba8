package id

import "testing"

func TestNewIDIsUniqueAndValid(t *testing.T) {
	first, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
	if len(first) != 36 {
		t.Fatalf("len(id) = %d, want 36", len(first))
	}
	if !Valid(first) {
		t.Fatalf("Valid(%q) = false", first)
	}
}

func TestValidRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "session-1", "../etc/passwd"} {
		if Valid(value) {
			t.Fatalf("Valid(%q) = true, want false", value)
		}
	}
}
