package model

import (
	"reflect"
	"testing"
)

func roundTrip(t *testing.T, in StringArray) StringArray {
	t.Helper()
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var out StringArray
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return out
}

func TestStringArray_RoundTripPreservesSpecialCharacters(t *testing.T) {
	// Fiche ids arrive from clients, so the codec must survive any
	// string, not just uuid/slug shapes.
	in := StringArray{
		"fiche-angine",
		"id,avec,virgules",
		"{accolades}",
		`guillemet " inclus`,
		`antislash \ inclus`,
		"mémofiche-été",
		"",
	}

	out := roundTrip(t, in)
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round-trip perdu: écrit %q, relu %q", in, out)
	}
}

func TestStringArray_AddUniqueIdempotentAfterReload(t *testing.T) {
	var arr StringArray
	if !arr.AddUnique("fiche,avec,virgule") {
		t.Fatal("le premier ajout doit réussir")
	}

	reloaded := roundTrip(t, arr)
	if added := reloaded.AddUnique("fiche,avec,virgule"); added {
		t.Error("le ré-ajout après rechargement doit être un no-op")
	}
	if len(reloaded) != 1 {
		t.Errorf("attendu 1 élément, obtenu %d: %q", len(reloaded), reloaded)
	}
}

func TestStringArray_NilStoresAsEmptyArray(t *testing.T) {
	var arr StringArray
	v, err := arr.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "{}" {
		t.Errorf("attendu {}, obtenu %v", v)
	}

	var out StringArray
	if err := out.Scan("{}"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("attendu un tableau vide non nil, obtenu %#v", out)
	}
}
