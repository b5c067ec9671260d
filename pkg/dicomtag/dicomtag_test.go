package dicomtag

import (
	"strings"
	"testing"
)

func TestLookupCurated(t *testing.T) {
	ref, ok := Lookup("0010,0010")
	if !ok {
		t.Fatal("expected curated hit for 0010,0010")
	}
	if ref.Keyword != "PatientName" || ref.VR != "PN" {
		t.Errorf("unexpected entry: %+v", ref)
	}
}

func TestLookupTrimsAndUppercases(t *testing.T) {
	ref, ok := Lookup("  0010,0010 ")
	if !ok || ref.Keyword != "PatientName" {
		t.Errorf("expected trimmed lookup to hit, got %+v ok=%v", ref, ok)
	}
}

func TestLookupDictionaryFallback(t *testing.T) {
	// 0018,1030 (Protocol Name) is not in the curated table.
	ref, ok := Lookup("0018,1030")
	if !ok {
		t.Fatal("expected dictionary fallback hit for 0018,1030")
	}
	if ref.Keyword != "ProtocolName" {
		t.Errorf("unexpected keyword: %q", ref.Keyword)
	}
	if ref.VR != "LO" {
		t.Errorf("unexpected VR: %q", ref.VR)
	}
	if ref.Name == "" {
		t.Error("fallback entry missing display name")
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, bad := range []string{"", "garbage", "0010-0010", "zzzz,0000", "0009,0001"} {
		if _, ok := Lookup(bad); ok {
			t.Errorf("expected miss for %q", bad)
		}
	}
}

func TestSearchByName(t *testing.T) {
	results := Search("patient")
	if len(results) == 0 {
		t.Fatal("expected results for 'patient'")
	}
	if len(results) > maxSearchResults {
		t.Fatalf("result cap exceeded: %d", len(results))
	}
	for _, ref := range results {
		hay := strings.ToLower(ref.Name + ref.Keyword + ref.Tag)
		if !strings.Contains(hay, "patient") {
			t.Errorf("result does not match query: %+v", ref)
		}
	}
}

func TestSearchByTagFragment(t *testing.T) {
	results := Search("0008,0060")
	if len(results) != 1 || results[0].Keyword != "Modality" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestSearchBlankQuery(t *testing.T) {
	if results := Search("   "); results != nil {
		t.Errorf("blank query must return nil, got %+v", results)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	lower := Search("modality")
	upper := Search("MODALITY")
	if len(lower) == 0 || len(lower) != len(upper) {
		t.Errorf("case sensitivity mismatch: %d vs %d", len(lower), len(upper))
	}
}
