package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PicksRenderer(t *testing.T) {
	assert.IsType(t, Nop{}, New(&bytes.Buffer{}, 10, true))
	assert.IsType(t, &Log{}, New(&bytes.Buffer{}, 10, false))
}

func TestBar_CountsAndRenders(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf, 4)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Advance()
		}()
	}
	wg.Wait()
	b.Finish("Done!")

	assert.Equal(t, 4, b.Pos())
	out := buf.String()
	assert.Contains(t, out, "4/4")
	assert.Contains(t, out, "Done!")
	assert.True(t, strings.HasPrefix(out, "\r[00:00:0"), out)
}

func TestLog_EmitsOnSteps(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	log.SetLevel(log.InfoLevel)

	l := NewLog(20, 25)
	for i := 0; i < 20; i++ {
		l.Advance()
	}
	l.Finish("Done!")

	require.Equal(t, 20, l.Pos())
	var msgs []string
	for _, e := range hook.AllEntries() {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{"progress 25%", "progress 50%", "progress 75%", "progress 100%", "Done!"}, msgs)
}

func TestLog_ZeroTotal(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	l := NewLog(0, 10)
	l.Finish("Done!")
	require.Len(t, hook.AllEntries(), 1)
}

func TestClock(t *testing.T) {
	assert.Equal(t, "00:00:00", Clock(0))
	assert.Equal(t, "00:01:05", Clock(65*time.Second))
	assert.Equal(t, "02:03:04", Clock(2*time.Hour+3*time.Minute+4*time.Second))
}
