// internal/progress/progress.go
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

// Reporter receives one Advance per completed branch.
type Reporter interface {
	Advance()
	Finish(msg string)
}

// New picks a renderer: nothing when quiet, a redrawn bar when out is a
// terminal, periodic log lines otherwise.
func New(out io.Writer, total int, quiet bool) Reporter {
	if quiet {
		return Nop{}
	}
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return NewBar(out, total)
	}
	return NewLog(total, 10)
}

// Nop discards progress.
type Nop struct{}

func (Nop) Advance()      {}
func (Nop) Finish(string) {}

// counter is the mutex-guarded position shared by the renderers.
type counter struct {
	mu    sync.Mutex
	pos   int
	total int
	start time.Time
}

func (c *counter) inc() (pos int, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos++
	return c.pos, time.Since(c.start)
}

// Pos is the number of Advance calls so far.
func (c *counter) Pos() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

func (c *counter) ratio(pos int) float64 {
	if c.total <= 0 {
		return 1
	}
	return float64(pos) / float64(c.total)
}

// Bar redraws "[hh:mm:ss] <bar> pos/len" in place.
type Bar struct {
	counter
	out      io.Writer
	model    progress.Model
	every    time.Duration
	lastDraw time.Time
	drawMu   sync.Mutex
}

func NewBar(out io.Writer, total int) *Bar {
	return &Bar{
		counter: counter{total: total, start: time.Now()},
		out:     out,
		model:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		every:   100 * time.Millisecond,
	}
}

func (b *Bar) Advance() {
	pos, elapsed := b.inc()
	b.draw(pos, elapsed, pos == b.total, "")
}

func (b *Bar) Finish(msg string) {
	b.mu.Lock()
	pos := b.pos
	b.mu.Unlock()
	b.draw(pos, time.Since(b.start), true, msg)
	_, _ = fmt.Fprintln(b.out)
}

func (b *Bar) draw(pos int, elapsed time.Duration, force bool, msg string) {
	b.drawMu.Lock()
	defer b.drawMu.Unlock()
	now := time.Now()
	if !force && now.Sub(b.lastDraw) < b.every {
		return
	}
	b.lastDraw = now
	_, _ = fmt.Fprintf(b.out, "\r[%s] %s %d/%d %s", Clock(elapsed), b.model.ViewAs(b.ratio(pos)), pos, b.total, msg)
}

// Log emits an info line each time another step percent of branches is done.
type Log struct {
	counter
	step int
	next int
}

func NewLog(total, stepPercent int) *Log {
	if stepPercent <= 0 {
		stepPercent = 10
	}
	return &Log{counter: counter{total: total, start: time.Now()}, step: stepPercent, next: stepPercent}
}

func (l *Log) Advance() {
	pos, elapsed := l.inc()
	pct := int(l.ratio(pos) * 100)

	l.mu.Lock()
	if pct < l.next {
		l.mu.Unlock()
		return
	}
	for l.next <= pct {
		l.next += l.step
	}
	l.mu.Unlock()

	log.WithFields(log.Fields{
		"done":    pos,
		"total":   l.total,
		"elapsed": Clock(elapsed),
	}).Infof("progress %d%%", pct)
}

func (l *Log) Finish(msg string) {
	l.mu.Lock()
	pos := l.pos
	l.mu.Unlock()
	log.WithFields(log.Fields{"done": pos, "total": l.total}).Info(msg)
}

// Clock formats d as hh:mm:ss.
func Clock(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}
