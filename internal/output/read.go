// internal/output/read.go
package output

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

func openReader(path, format string) (*os.File, *csv.Reader, error) {
	comma, err := Delimiter(format)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open result file %s", path)
	}
	r := csv.NewReader(f)
	r.Comma = comma
	r.ReuseRecord = true
	// FieldsPerRecord=0: every row must match the header width.
	if _, err := r.Read(); err != nil {
		_ = f.Close()
		if err == io.EOF {
			return nil, nil, errors.Errorf("result file %s has no header", path)
		}
		return nil, nil, errors.Wrapf(err, "read header of %s", path)
	}
	return f, r, nil
}

// CountRows reads the result file back and returns the number of data rows
// (header excluded).
func CountRows(path, format string) (int, error) {
	f, r, err := openReader(path, format)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, errors.Wrapf(err, "read %s", path)
		}
		n++
	}
}

// ReadRows parses every data row of a result file as integers.
func ReadRows(path, format string) ([][]int, error) {
	f, r, err := openReader(path, format)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out [][]int
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, errors.Wrapf(err, "read %s", path)
		}
		row := make([]int, len(rec))
		for i, s := range rec {
			v, err := strconv.Atoi(s)
			if err != nil {
				line, _ := r.FieldPos(i)
				return out, errors.Wrapf(err, "%s:%d: column n%d", path, line, i+1)
			}
			row[i] = v
		}
		out = append(out, row)
	}
}
