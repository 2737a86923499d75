package util

import (
	"testing"
	"time"
)

func TestParseDateISO(t *testing.T) {
	got, ok := ParseDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateMonthly(t *testing.T) {
	got, ok := ParseDate("Mar-24")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Month() != time.March {
		t.Fatalf("unexpected month %v", got.Month())
	}
}

func TestParseDateGarbage(t *testing.T) {
	if _, ok := ParseDate("not a date"); ok {
		t.Fatalf("expected failure")
	}
	if _, ok := ParseDate(""); ok {
		t.Fatalf("expected failure on empty")
	}
}

func TestParseFloatMissingMarker(t *testing.T) {
	if _, ok := ParseFloat("."); ok {
		t.Fatalf("FRED missing marker should not parse")
	}
	v, ok := ParseFloat(" 4.25 ")
	if !ok || v != 4.25 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
}
