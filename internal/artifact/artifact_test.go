package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	in := map[string]int{"CA3": 2, "DG": 1}
	if err := WriteJSON(path, in, true, false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out map[string]int
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["CA3"] != 2 || out["DG"] != 1 {
		t.Fatalf("round trip mismatch: %v", out)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestWriteJSONGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overview.json")
	if err := WriteJSON(path, []int{1, 2, 3}, false, true); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	f, err := os.Open(path + ".gz")
	if err != nil {
		t.Fatalf("gz artifact missing: %v", err)
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer zr.Close()
	var out []int
	if err := json.NewDecoder(zr).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 3 || out[2] != 3 {
		t.Fatalf("decoded %v, want [1 2 3]", out)
	}
}

func TestMarshalCompactVsIndent(t *testing.T) {
	compact, err := Marshal(map[string]int{"a": 1}, false)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	indented, err := Marshal(map[string]int{"a": 1}, true)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(compact) >= len(indented) {
		t.Fatalf("compact (%d bytes) should be smaller than indented (%d bytes)", len(compact), len(indented))
	}
}
