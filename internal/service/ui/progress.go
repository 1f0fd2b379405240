package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// Progress draws a single-line bar, redrawn in place on every step.
type Progress struct {
	mu    sync.Mutex
	out   io.Writer
	bar   progress.Model
	label string
	total int
	done  int
}

// NewProgress returns a bar writing to out; a nil out disables drawing.
func NewProgress(out io.Writer, label string, total int) *Progress {
	return &Progress{
		out:   out,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		label: label,
		total: total,
	}
}

func (p *Progress) Step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.draw()
}

// Finish terminates the bar line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out == nil {
		return
	}
	fmt.Fprintln(p.out)
}

func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

func (p *Progress) draw() {
	if p.out == nil {
		return
	}
	pct := 1.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total)
	}
	fmt.Fprintf(p.out, "\r%s %s %d/%d", DescStyle.Render(p.label), p.bar.ViewAs(pct), p.done, p.total)
}
