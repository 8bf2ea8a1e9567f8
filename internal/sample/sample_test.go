package sample

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/spatialviz/spatialprep/internal/schema"

	"gopkg.in/guregu/null.v3"
)

func rows(n int) []schema.Row {
	out := make([]schema.Row, n)
	for i := range out {
		out[i] = schema.Row{CellID: null.StringFrom(fmt.Sprintf("c%d", i))}
	}
	return out
}

func TestStrideScenario(t *testing.T) {
	// 25 rows, stride 10 -> 1-indexed positions 1, 11, 21.
	in := rows(25)
	got, err := Stride(in, 10)
	if err != nil {
		t.Fatalf("Stride: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, wantID := range []string{"c0", "c10", "c20"} {
		if got[i].CellID.String != wantID {
			t.Fatalf("element %d = %s, want %s", i, got[i].CellID.String, wantID)
		}
	}
}

func TestStrideLengthAndPositions(t *testing.T) {
	for _, tc := range []struct{ n, k int }{
		{0, 1}, {1, 1}, {1, 10}, {9, 10}, {10, 10}, {11, 10}, {100, 3}, {7, 7},
	} {
		got, err := Stride(rows(tc.n), tc.k)
		if err != nil {
			t.Fatalf("Stride(n=%d, k=%d): %v", tc.n, tc.k, err)
		}
		wantLen := (tc.n + tc.k - 1) / tc.k
		if len(got) != wantLen {
			t.Fatalf("Stride(n=%d, k=%d) len = %d, want ceil = %d", tc.n, tc.k, len(got), wantLen)
		}
		for i, r := range got {
			if want := fmt.Sprintf("c%d", i*tc.k); r.CellID.String != want {
				t.Fatalf("Stride(n=%d, k=%d)[%d] = %s, want %s", tc.n, tc.k, i, r.CellID.String, want)
			}
		}
	}
}

func TestStrideSmallerThanStrideKeepsFirstRow(t *testing.T) {
	got, err := Stride(rows(4), 100)
	if err != nil {
		t.Fatalf("Stride: %v", err)
	}
	if len(got) != 1 || got[0].CellID.String != "c0" {
		t.Fatalf("got %d rows, want exactly the first row", len(got))
	}
}

func TestStrideEmptyInputYieldsEmptySlice(t *testing.T) {
	got, err := Stride(nil, 10)
	if err != nil {
		t.Fatalf("Stride: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice (marshals to []), got %#v", got)
	}
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[]" {
		t.Fatalf("marshals to %s, want []", b)
	}
}

func TestStrideRejectsInvalidK(t *testing.T) {
	if _, err := Stride(rows(5), 0); err == nil {
		t.Fatal("expected error for stride 0")
	}
	if _, err := Stride(rows(5), -3); err == nil {
		t.Fatal("expected error for negative stride")
	}
}
