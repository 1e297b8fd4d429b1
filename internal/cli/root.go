// internal/cli/root.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"sdscan/internal/config"
	"sdscan/internal/output"
	"sdscan/internal/version"
)

// RunFunc receives the resolved, validated parameters.
type RunFunc func(cmd *cobra.Command, p config.Params) error

// flagKeys maps each flag to the config key it overrides.
var flagKeys = map[string]string{
	"min-scale":           config.KeyMinScale,
	"max-scale":           config.KeyMaxScale,
	"length":              config.KeyN,
	"target-mean":         config.KeyTargetMean,
	"target-sd":           config.KeyTargetSD,
	"rounding-error-mean": config.KeyRoundingErrorMean,
	"rounding-error-sd":   config.KeyRoundingErrorSD,
	"output":              config.KeyOutput,
	"format":              config.KeyFormat,
	"threads":             config.KeyThreads,
	"summary":             config.KeySummary,
	"metrics-addr":        config.KeyMetricsAddr,
	"log-level":           config.KeyLogLevel,
	"log-format":          config.KeyLogFormat,
	"quiet":               config.KeyQuiet,
}

// NewRootCmd builds the sdscan command. Parameters resolve through v as
// defaults < --config file < SDSCAN_* env < explicit flags.
func NewRootCmd(v *viper.Viper, run RunFunc) *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "sdscan",
		Short: "Enumerate integer sequences that match a reported mean and SD",
		Long: `sdscan enumerates every non-decreasing sequence of n integers drawn from
[min-scale, max-scale] whose mean and sample standard deviation round to the
reported targets, and writes them to a CSV (or TSV) file.

Every flag can also be set in a YAML file (--config) using the snake_case key,
e.g. max_scale: 7, or through the environment as SDSCAN_<KEY>, e.g.
SDSCAN_TARGET_SD=2.78. Explicit flags win.`,
		Example: `  sdscan
  sdscan --min-scale 1 --max-scale 5 -n 20 --target-mean 3.1 --target-sd 1.2 -o out.csv
  sdscan --config run.yaml --summary run-summary.yaml`,
		Args:          cobra.NoArgs,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return run(cmd, p)
		},
	}

	fs := cmd.Flags()
	AddFlags(fs)
	fs.StringVar(&configFile, "config", "", "YAML file with run parameters")
	fs.SortFlags = false
	for name, key := range flagKeys {
		// Lookup cannot miss: AddFlags defines every name in flagKeys.
		_ = v.BindPFlag(key, fs.Lookup(name))
	}
	return cmd
}

// AddFlags defines the run parameter flags with their default values.
func AddFlags(fs *pflag.FlagSet) {
	d := config.Defaults()
	fs.Int("min-scale", d.MinScale, "smallest allowed value")
	fs.Int("max-scale", d.MaxScale, "largest allowed value")
	fs.IntP("length", "n", d.N, "sequence length (>= 2)")
	fs.Float64("target-mean", d.TargetMean, "reported mean")
	fs.Float64("target-sd", d.TargetSD, "reported sample standard deviation")
	fs.Float64("rounding-error-mean", d.RoundingErrorMean, "allowed deviation from the target mean")
	fs.Float64("rounding-error-sd", d.RoundingErrorSD, "allowed deviation from the target SD")
	fs.StringP("output", "o", d.Output, "result file (truncated at start)")
	fs.String("format", d.Format, fmt.Sprintf("result file format: %s", strings.Join(output.Formats(), "|")))
	fs.IntP("threads", "t", d.Threads, "worker goroutines (0 = all CPUs)")
	fs.String("summary", d.Summary, "write a YAML run summary to this path")
	fs.String("metrics-addr", d.MetricsAddr, "serve Prometheus metrics on this address during the run, e.g. :9090")
	fs.String("log-level", d.LogLevel, "debug|info|warn|error")
	fs.String("log-format", d.LogFormat, "text|json")
	fs.BoolP("quiet", "q", d.Quiet, "suppress the progress display")
}
