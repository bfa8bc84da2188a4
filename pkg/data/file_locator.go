package data

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeTicker converts a ticker into a filesystem-safe name.
// Futures symbols like "GC=F" become "GC_F".
func SanitizeTicker(ticker string) string {
	replacer := strings.NewReplacer("=", "_", "/", "_", "^", "")
	return replacer.Replace(ticker)
}

// FindDataFile returns the expected CSV path for a ticker under the
// data root, e.g. data/GC_F.csv.
func FindDataFile(dataRoot, ticker string) string {
	return filepath.Join(dataRoot, fmt.Sprintf("%s.csv", SanitizeTicker(ticker)))
}
