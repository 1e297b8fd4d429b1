package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdscan/internal/engine"
	"sdscan/internal/pipeline"
)

type fixedRows int

func (f fixedRows) SearchBranch(s engine.Seed) engine.Batch {
	b := make(engine.Batch, int(f))
	for i := range b {
		b[i] = []int{s.I, s.J}
	}
	return b
}

func TestRunStream_CountsRowsAndSendsEveryBranch(t *testing.T) {
	seeds := engine.Seeds(1, 4)
	var sent int
	total, err := RunStream(context.Background(), pipeline.Config{Threads: 2}, seeds, fixedRows(3),
		func(engine.Batch) error { sent++; return nil })
	require.NoError(t, err)
	assert.Equal(t, len(seeds), sent)
	assert.Equal(t, 3*len(seeds), total)
}

func TestRunStream_SendError(t *testing.T) {
	boom := errors.New("writer gone")
	_, err := RunStream(context.Background(), pipeline.Config{Threads: 2}, engine.Seeds(1, 4), fixedRows(1),
		func(engine.Batch) error { return boom })
	assert.ErrorIs(t, err, boom)
}

type pipeWriter struct{}

func (pipeWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("device full") }

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printf(&buf, "seeds: %d\n", 28))
	assert.Equal(t, "seeds: 28\n", buf.String())
	assert.NoError(t, Printf(pipeWriter{}, "x"))
	assert.Error(t, Printf(failWriter{}, "x"))
}
