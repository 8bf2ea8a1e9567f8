// Package manifest builds the dataset index consumed by the front end.
package manifest

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// FileName is the fixed manifest location inside the data directory. Each
// run overwrites it in full; there is no incremental update.
const FileName = "manifest.json"

// Entry points the front end at one dataset file.
type Entry struct {
	File  string `json:"file"`
	Label string `json:"label"`
}

// Label derives a human-readable display name from a dataset file name:
// the extension goes, then the first matching decoration suffix.
func Label(name string, trimSuffixes []string) string {
	stem := name
	if i := strings.LastIndex(stem, "."); i > 0 {
		stem = stem[:i]
	}
	for _, suf := range trimSuffixes {
		if strings.Contains(stem, suf) {
			return strings.Replace(stem, suf, "", 1)
		}
	}
	return stem
}

// Build enumerates dir, keeps files with the given extension, and returns
// entries sorted by file name. The manifest file itself is excluded. A
// directory read failure is fatal to the run.
func Build(dir, ext string, trimSuffixes []string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	out := []Entry{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == FileName || !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
			continue
		}
		out = append(out, Entry{File: name, Label: Label(name, trimSuffixes)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out, nil
}
