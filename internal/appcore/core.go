// internal/appcore/core.go
package appcore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sdscan/internal/cmdutil"
	"sdscan/internal/config"
	"sdscan/internal/engine"
	"sdscan/internal/logging"
	"sdscan/internal/metrics"
	"sdscan/internal/output"
	"sdscan/internal/pipeline"
	"sdscan/internal/progress"
	"sdscan/internal/runutil"
	"sdscan/internal/summary"
	"sdscan/internal/writers"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 2
	ExitIO          = 3
	ExitInterrupted = 130
)

// Run executes one search with validated parameters and returns the process
// exit code. The console report goes to stdout; progress and logs to stderr.
func Run(parent context.Context, stdout, stderr io.Writer, p config.Params) int {
	if err := logging.Configure(stderr, p.LogLevel, p.LogFormat); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	runID := summary.NewRunID()
	logger := log.WithField("run_id", runID)
	startedAt := time.Now()

	eng := engine.New(p.Engine())
	seeds := engine.Seeds(p.MinScale, p.MaxScale)
	thr := runutil.UsefulWorkers(runutil.EffectiveThreads(p.Threads), len(seeds))

	if err := cmdutil.Printf(stdout, "Number of initial combinations to process: %d\n", len(seeds)); err != nil {
		return fail(logger, err, "cannot write report")
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	m := metrics.New()
	m.SeedsTotal.Set(float64(len(seeds)))
	if p.MetricsAddr != "" {
		stop, err := m.Serve(ctx, p.MetricsAddr)
		if err != nil {
			return fail(logger, err, "cannot serve metrics")
		}
		defer stop()
	}

	sink, err := output.Create(p.Output, p.Format, p.N)
	if err != nil {
		return fail(logger, err, "cannot open result file")
	}
	defer func() { _ = sink.Close() }()

	w := eng.Config().Window
	logger.WithFields(log.Fields{
		"seeds":     len(seeds),
		"threads":   thr,
		"output":    p.Output,
		"sum_lower": w.SumLower,
		"sum_upper": w.SumUpper,
		"sd_lower":  w.SDLower,
		"sd_upper":  w.SDUpper,
	}).Info("starting search")

	bar := progress.New(stderr, len(seeds), p.Quiet)
	inCh, writeErr := writers.StartBatchWriter(sink, runutil.WriterBuffer(thr), writers.Hooks{
		Written: func(b engine.Batch, took time.Duration) {
			bar.Advance()
			m.RecordBatch(b.Len(), took)
		},
		// Stop dispatching branches once the sink is dead.
		Failed: func(error) { cancel() },
	})

	start := time.Now()
	sent, perr := cmdutil.RunStream(ctx, pipeline.Config{Threads: thr}, seeds, eng, func(b engine.Batch) error {
		select {
		case inCh <- b:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(inCh)
	werr := <-writeErr
	elapsed := time.Since(start)
	if werr != nil || perr != nil {
		bar.Finish("stopped")
	} else {
		bar.Finish("search complete")
	}

	if werr != nil {
		return fail(logger, werr, "cannot write results")
	}
	if err := sink.Close(); err != nil {
		return fail(logger, err, "cannot close result file")
	}
	if perr != nil {
		if parent.Err() != nil || errors.Is(perr, context.Canceled) {
			logger.WithField("completed", sink.Rows()).Warn("interrupted; result file is incomplete")
			return ExitInterrupted
		}
		return fail(logger, perr, "search failed")
	}

	if err := cmdutil.Printf(stdout, "Execution time: %.2f seconds\n", elapsed.Seconds()); err != nil {
		return fail(logger, err, "cannot write report")
	}

	accepted, err := output.CountRows(p.Output, p.Format)
	if err != nil {
		return fail(logger, err, "cannot read back result file")
	}
	if int64(accepted) != sink.Rows() || accepted != sent {
		logger.WithFields(log.Fields{"read_back": accepted, "written": sink.Rows(), "found": sent}).
			Warn("result file row count differs from rows written")
	}
	if err := cmdutil.Printf(stdout, "Number of valid combinations: %d\n", accepted); err != nil {
		return fail(logger, err, "cannot write report")
	}

	logger.WithFields(log.Fields{
		"accepted": accepted,
		"elapsed":  progress.Clock(elapsed),
	}).Info("search finished")

	if p.Summary != "" {
		rep := summary.Report{
			RunID:      runID,
			StartedAt:  startedAt.UTC(),
			Params:     p,
			Window:     summary.FromWindow(w),
			Seeds:      len(seeds),
			Threads:    thr,
			Accepted:   accepted,
			ElapsedSec: elapsed.Seconds(),
		}
		if err := summary.Write(p.Summary, rep); err != nil {
			return fail(logger, err, "cannot write summary")
		}
		logger.WithField("path", p.Summary).Debug("summary written")
	}
	return ExitOK
}

func fail(logger *log.Entry, err error, msg string) int {
	logging.WithStacktrace(logger, err).Error(msg)
	return ExitIO
}
