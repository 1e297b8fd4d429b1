package output

import (
	"fmt"
	"strconv"
)

// Output formats
const (
	FormatCSV = "csv"
	FormatTSV = "tsv"
)

// delimiters maps format → field separator. Register new tabular formats here.
var delimiters = map[string]rune{
	FormatCSV: ',',
	FormatTSV: '\t',
}

// Delimiter returns the field separator for format.
func Delimiter(format string) (rune, error) {
	d, ok := delimiters[format]
	if !ok {
		return 0, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return d, nil
}

// Formats lists the registered formats (for flag help and validation).
func Formats() []string { return []string{FormatCSV, FormatTSV} }

// Header is the canonical header row for n columns: n1..nN.
// Keep this as the single source of truth; the sink and read-back both use it.
func Header(n int) []string {
	h := make([]string, n)
	for i := range h {
		h[i] = "n" + strconv.Itoa(i+1)
	}
	return h
}
