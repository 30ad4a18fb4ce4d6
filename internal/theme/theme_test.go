package theme

import "testing"

func TestLookupByNameAndIndex(t *testing.T) {
	r := Builtin()
	byName, ok := r.Lookup("solarized-dark")
	if !ok {
		t.Fatalf("Lookup(solarized-dark) not found")
	}
	byIndex, ok := r.Lookup("1")
	if !ok {
		t.Fatalf("Lookup(1) not found")
	}
	if byName != byIndex {
		t.Errorf("Lookup by name and by index 1 should resolve to the same Theme")
	}
}

func TestLookupUnknownFails(t *testing.T) {
	r := Builtin()
	if _, ok := r.Lookup("nonexistent"); ok {
		t.Errorf("Lookup(nonexistent) should fail")
	}
}

func TestDefaultIsRegistered(t *testing.T) {
	r := Builtin()
	th, ok := r.ByName("default")
	if !ok || th != Default() {
		t.Errorf("Builtin()'s \"default\" entry should be the same Theme as Default()")
	}
}
