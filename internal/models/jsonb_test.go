package models

import (
	"testing"
)

func TestListColumnsStoreNilAsEmptyArray(t *testing.T) {
	v, err := MatchCriteriaList(nil).Value()
	if err != nil {
		t.Fatal(err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("nil criteria list stored as %q, want []", v)
	}

	v, err = JSONMap(nil).Value()
	if err != nil {
		t.Fatal(err)
	}
	if string(v.([]byte)) != "{}" {
		t.Errorf("nil map stored as %q, want {}", v)
	}
}

func TestListColumnScan(t *testing.T) {
	var l MatchCriteriaList
	raw := `[{"tag":"0008,0060","op":"eq","value":"CT"}]`

	if err := l.Scan([]byte(raw)); err != nil {
		t.Fatal(err)
	}
	if len(l) != 1 || l[0].Op != OpEq || l[0].Value != "CT" {
		t.Errorf("unexpected scan result: %+v", l)
	}

	// SQL NULL leaves the zero value in place.
	var empty StringList
	if err := empty.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if empty != nil {
		t.Errorf("expected nil after NULL scan, got %+v", empty)
	}

	// String sources (some drivers) work too.
	var m JSONMap
	if err := m.Scan(`{"bucket":"b"}`); err != nil {
		t.Fatal(err)
	}
	if m["bucket"] != "b" {
		t.Errorf("unexpected map: %+v", m)
	}

	if err := m.Scan(42); err == nil {
		t.Error("expected error for unsupported source type")
	}
}
