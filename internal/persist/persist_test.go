package persist

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	records := []Record{
		{Col: 1, Row: 0, Contents: "10.000000"},
		{Col: 2, Row: 0, Contents: "=A1+A2*A3"},
		{Col: 1, Row: 1, Contents: "hello world"},
	}
	var sb strings.Builder
	if err := Encode(&sb, records); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := Decode(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i, r := range records {
		if got[i] != r {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], r)
		}
	}
}

func TestDecodeToleratesMissingTrailingSeparator(t *testing.T) {
	got, err := Decode(strings.NewReader("1 0 hello~2 0 world"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 2 || got[1].Contents != "world" {
		t.Fatalf("got %+v", got)
	}
}

func TestDecodeContentsMayContainSpaces(t *testing.T) {
	got, err := Decode(strings.NewReader("3 4 = 1 + 5*3/2^2 > A1~"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Contents != "= 1 + 5*3/2^2 > A1" {
		t.Fatalf("got %q", got[0].Contents)
	}
}

func TestDecodeRejectsMalformedRecord(t *testing.T) {
	if _, err := Decode(strings.NewReader("notanumber 0 x~")); err == nil {
		t.Fatal("expected error for non-numeric column")
	}
}

func TestDecodeSkipsBlankRecords(t *testing.T) {
	got, err := Decode(strings.NewReader("~~1 0 x~"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
}
