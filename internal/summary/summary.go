package summary

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"sdscan/internal/config"
	"sdscan/internal/engine"
)

// Report is the YAML run record written by --summary.
type Report struct {
	RunID      string        `yaml:"run_id"`
	StartedAt  time.Time     `yaml:"started_at"`
	Params     config.Params `yaml:"params"`
	Window     Window        `yaml:"window"`
	Seeds      int           `yaml:"seeds"`
	Threads    int           `yaml:"threads"`
	Accepted   int           `yaml:"accepted"`
	ElapsedSec float64       `yaml:"elapsed_seconds"`
}

// Window is the derived acceptance window, flattened for the report.
type Window struct {
	SumLower float64 `yaml:"sum_lower"`
	SumUpper float64 `yaml:"sum_upper"`
	SDLower  float64 `yaml:"sd_lower"`
	SDUpper  float64 `yaml:"sd_upper"`
}

func FromWindow(w engine.Window) Window {
	return Window{SumLower: w.SumLower, SumUpper: w.SumUpper, SDLower: w.SDLower, SDUpper: w.SDUpper}
}

// NewRunID returns a fresh identifier for logs and the report.
func NewRunID() string { return uuid.NewString() }

// Write encodes r to path, replacing any existing file.
func Write(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create summary %s", path)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "encode summary %s", path)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "encode summary %s", path)
	}
	return errors.Wrapf(f.Close(), "close summary %s", path)
}

// Read decodes a report written by Write.
func Read(path string) (Report, error) {
	var r Report
	b, err := os.ReadFile(path)
	if err != nil {
		return r, errors.Wrapf(err, "read summary %s", path)
	}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return r, errors.Wrapf(err, "decode summary %s", path)
	}
	return r, nil
}
