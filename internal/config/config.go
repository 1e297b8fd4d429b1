// internal/config/config.go
package config

import (
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"sdscan/internal/engine"
	"sdscan/internal/logging"
	"sdscan/internal/output"
)

// EnvPrefix namespaces environment overrides: SDSCAN_MAX_SCALE, SDSCAN_OUTPUT, ...
const EnvPrefix = "SDSCAN"

// Keys shared by viper, the YAML config file and the summary report.
const (
	KeyMinScale          = "min_scale"
	KeyMaxScale          = "max_scale"
	KeyN                 = "n"
	KeyTargetMean        = "target_mean"
	KeyTargetSD          = "target_sd"
	KeyRoundingErrorMean = "rounding_error_mean"
	KeyRoundingErrorSD   = "rounding_error_sd"
	KeyOutput            = "output"
	KeyFormat            = "format"
	KeyThreads           = "threads"
	KeySummary           = "summary"
	KeyMetricsAddr       = "metrics_addr"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
	KeyQuiet             = "quiet"
)

// Params is one run's fully resolved parameters.
type Params struct {
	MinScale          int     `mapstructure:"min_scale" yaml:"min_scale"`
	MaxScale          int     `mapstructure:"max_scale" yaml:"max_scale"`
	N                 int     `mapstructure:"n" yaml:"n"`
	TargetMean        float64 `mapstructure:"target_mean" yaml:"target_mean"`
	TargetSD          float64 `mapstructure:"target_sd" yaml:"target_sd"`
	RoundingErrorMean float64 `mapstructure:"rounding_error_mean" yaml:"rounding_error_mean"`
	RoundingErrorSD   float64 `mapstructure:"rounding_error_sd" yaml:"rounding_error_sd"`

	Output  string `mapstructure:"output" yaml:"output"`
	Format  string `mapstructure:"format" yaml:"format"`
	Threads int    `mapstructure:"threads" yaml:"threads"` // 0 = NumCPU

	Summary     string `mapstructure:"summary" yaml:"summary,omitempty"`
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr,omitempty"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat   string `mapstructure:"log_format" yaml:"log_format"`
	Quiet       bool   `mapstructure:"quiet" yaml:"quiet"`
}

// Defaults reproduces the reference run: scales 1..7, 30 values, mean
// 5.00 ± 0.01, SD 2.78 ± 0.01.
func Defaults() Params {
	return Params{
		MinScale:          1,
		MaxScale:          7,
		N:                 30,
		TargetMean:        5.0,
		TargetSD:          2.78,
		RoundingErrorMean: 0.01,
		RoundingErrorSD:   0.01,
		Output:            "parallel_results.csv",
		Format:            output.FormatCSV,
		LogLevel:          "info",
		LogFormat:         logging.FormatText,
	}
}

// SetDefaults registers Defaults() as viper's lowest layer.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyMinScale, d.MinScale)
	v.SetDefault(KeyMaxScale, d.MaxScale)
	v.SetDefault(KeyN, d.N)
	v.SetDefault(KeyTargetMean, d.TargetMean)
	v.SetDefault(KeyTargetSD, d.TargetSD)
	v.SetDefault(KeyRoundingErrorMean, d.RoundingErrorMean)
	v.SetDefault(KeyRoundingErrorSD, d.RoundingErrorSD)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyThreads, d.Threads)
	v.SetDefault(KeySummary, d.Summary)
	v.SetDefault(KeyMetricsAddr, d.MetricsAddr)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyQuiet, d.Quiet)
}

// Load resolves Params from v: defaults, then configFile (if set), then
// SDSCAN_* environment variables, then whatever flags were bound to v.
// The result is validated.
func Load(v *viper.Viper, configFile string) (Params, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Params{}, errors.Wrapf(err, "read config %s", configFile)
		}
	}

	var p Params
	if err := v.Unmarshal(&p); err != nil {
		return Params{}, errors.Wrap(err, "decode parameters")
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks every parameter and reports all violations at once. Each
// one is an *ErrInvalidArgument.
func (p Params) Validate() error {
	var result *multierror.Error
	bad := func(name string, value interface{}, msg string) {
		result = multierror.Append(result, errors.WithStack(&ErrInvalidArgument{Name: name, Value: value, Message: msg}))
	}

	if p.MaxScale < p.MinScale {
		bad(KeyMaxScale, p.MaxScale, "must be >= min_scale")
	}
	if p.N < 2 {
		bad(KeyN, p.N, "sequences need at least 2 values")
	}
	for _, f := range []struct {
		name   string
		v      float64
		nonNeg bool
	}{
		{KeyTargetMean, p.TargetMean, false},
		{KeyTargetSD, p.TargetSD, true},
		{KeyRoundingErrorMean, p.RoundingErrorMean, true},
		{KeyRoundingErrorSD, p.RoundingErrorSD, true},
	} {
		switch {
		case math.IsNaN(f.v) || math.IsInf(f.v, 0):
			bad(f.name, f.v, "must be finite")
		case f.nonNeg && f.v < 0:
			bad(f.name, f.v, "must be >= 0")
		}
	}
	if p.Threads < 0 {
		bad(KeyThreads, p.Threads, "must be >= 0 (0 = all CPUs)")
	}
	if strings.TrimSpace(p.Output) == "" {
		bad(KeyOutput, p.Output, "an output path is required")
	}
	if _, err := output.Delimiter(p.Format); err != nil {
		bad(KeyFormat, p.Format, "want one of "+strings.Join(output.Formats(), ", "))
	}
	if _, err := logging.ParseLevel(p.LogLevel); err != nil {
		bad(KeyLogLevel, p.LogLevel, "want debug, info, warn or error")
	}
	if _, err := logging.Formatter(p.LogFormat); err != nil {
		bad(KeyLogFormat, p.LogFormat, "want text or json")
	}

	if result != nil {
		result.ErrorFormat = joinErrors
	}
	return result.ErrorOrNil()
}

func joinErrors(es []error) string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "invalid parameters: " + strings.Join(msgs, "; ")
}

// TargetSum is target_mean * n.
func (p Params) TargetSum() float64 { return p.TargetMean * float64(p.N) }

// RoundingErrorSum is rounding_error_mean * n.
func (p Params) RoundingErrorSum() float64 { return p.RoundingErrorMean * float64(p.N) }

// Engine builds the search configuration these parameters describe.
func (p Params) Engine() engine.Config {
	return engine.Config{
		MinScale: p.MinScale,
		MaxScale: p.MaxScale,
		N:        p.N,
		Window:   engine.NewWindow(p.N, p.TargetMean, p.TargetSD, p.RoundingErrorMean, p.RoundingErrorSD),
	}
}
