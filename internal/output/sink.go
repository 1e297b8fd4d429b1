// internal/output/sink.go
package output

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Sink is the append-only result file. Each Append is one critical section:
// all rows of a batch are written and flushed before the lock is released,
// so batches from different branches never interleave.
type Sink struct {
	mu   sync.Mutex
	path string
	n    int
	f    *os.File
	w    *csv.Writer
	rec  []string
	rows int64
}

// Create truncates (or creates) path, writes the n1..nN header and flushes it.
func Create(path, format string, n int) (*Sink, error) {
	comma, err := Delimiter(format)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create result file %s", path)
	}
	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.Write(Header(n)); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "write header to %s", path)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "flush header to %s", path)
	}
	return &Sink{path: path, n: n, f: f, w: w}, nil
}

// Path is the file the sink writes to.
func (s *Sink) Path() string { return s.path }

// Append writes every row of batch and flushes. Empty batches do no I/O.
func (s *Sink) Append(batch [][]int) error {
	if len(batch) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return errors.Errorf("append to closed result file %s", s.path)
	}
	for _, row := range batch {
		if len(row) != s.n {
			return errors.Errorf("row %v has %d values, want %d", row, len(row), s.n)
		}
		s.rec = FormatRow(s.rec, row)
		if err := s.w.Write(s.rec); err != nil {
			return errors.Wrapf(err, "write %s", s.path)
		}
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return errors.Wrapf(err, "flush %s", s.path)
	}
	s.rows += int64(len(batch))
	return nil
}

// Rows is the number of data rows appended so far.
func (s *Sink) Rows() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// Close flushes and closes the file. It is safe to call more than once.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	s.w.Flush()
	werr := s.w.Error()
	cerr := s.f.Close()
	s.w, s.f = nil, nil
	if werr != nil {
		return errors.Wrapf(werr, "flush %s", s.path)
	}
	return errors.Wrapf(cerr, "close %s", s.path)
}
