package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdscan/internal/engine"
)

func TestLoad_Defaults(t *testing.T) {
	p, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
	assert.InDelta(t, 150.0, p.TargetSum(), 1e-9)
	assert.InDelta(t, 0.3, p.RoundingErrorSum(), 1e-9)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_scale: 5\nn: 4\ntarget_mean: 3.0\noutput: out.tsv\nformat: tsv\n"), 0o644))
	t.Setenv("SDSCAN_N", "6")
	t.Setenv("SDSCAN_ROUNDING_ERROR_SD", "0.5")

	p, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 5, p.MaxScale)
	assert.Equal(t, 6, p.N, "env beats the config file")
	assert.Equal(t, 3.0, p.TargetMean)
	assert.Equal(t, 0.5, p.RoundingErrorSD)
	assert.Equal(t, "out.tsv", p.Output)
	assert.Equal(t, "tsv", p.Format)
	assert.Equal(t, 1, p.MinScale, "unset keys keep their defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	p := Defaults()
	p.MinScale, p.MaxScale = 5, 3
	p.N = 1
	p.TargetSD = -1
	p.RoundingErrorMean = math.NaN()
	p.Threads = -2
	p.Output = " "
	p.Format = "xlsx"
	p.LogLevel = "chatty"
	p.LogFormat = "xml"

	err := p.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	var names []string
	for _, e := range merr.Errors {
		var ia *ErrInvalidArgument
		require.True(t, errors.As(e, &ia), "%v", e)
		names = append(names, ia.Name)
	}
	assert.Equal(t, []string{
		KeyMaxScale, KeyN, KeyTargetSD, KeyRoundingErrorMean,
		KeyThreads, KeyOutput, KeyFormat, KeyLogLevel, KeyLogFormat,
	}, names)
	assert.Contains(t, err.Error(), "invalid parameters: ")
}

func TestValidate_EdgeValuesAccepted(t *testing.T) {
	p := Defaults()
	p.MinScale, p.MaxScale = 4, 4
	p.N = 2
	p.TargetSD = 0
	p.RoundingErrorMean, p.RoundingErrorSD = 0, 0
	p.TargetMean = -3
	require.NoError(t, p.Validate())
}

func TestValidate_ErrorIsInvalidArgument(t *testing.T) {
	p := Defaults()
	p.N = 0
	var ia *ErrInvalidArgument
	require.True(t, errors.As(p.Validate(), &ia))
	assert.Equal(t, KeyN, ia.Name)
	assert.Equal(t, 0, ia.Value)
	assert.Equal(t, `value 0 is invalid for "n"; sequences need at least 2 values`, ia.Error())
}

func TestParams_Engine(t *testing.T) {
	c := Defaults().Engine()
	assert.Equal(t, 1, c.MinScale)
	assert.Equal(t, 7, c.MaxScale)
	assert.Equal(t, 30, c.N)
	assert.Equal(t, engine.NewWindow(30, 5.0, 2.78, 0.01, 0.01), c.Window)
}
