// Package benchbar provides a really simple progress bar for the benchmarking
// process.
package benchbar

import (
	"github.com/schollz/progressbar/v3"
)

type simpleBar struct {
	pb          *progressbar.ProgressBar
	description string
	maxItems    int
}

func NewBar(description string, maxItems int) *simpleBar {
	pb := progressbar.Default(int64(maxItems), description)
	_ = pb.Set(0)

	return &simpleBar{
		pb:          pb,
		description: description,
		maxItems:    maxItems,
	}
}

func (p *simpleBar) Inc() {
	_ = p.pb.Add(1)
}

func (p *simpleBar) Finish() {
	_ = p.pb.Finish()
	_ = p.pb.Close()
}
