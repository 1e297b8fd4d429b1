// internal/output/rows.go
package output

import "strconv"

// FormatRow renders one sequence as record fields, reusing buf when it is
// large enough.
func FormatRow(buf []string, row []int) []string {
	if cap(buf) < len(row) {
		buf = make([]string, len(row))
	}
	buf = buf[:len(row)]
	for i, v := range row {
		buf[i] = strconv.Itoa(v)
	}
	return buf
}
