package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Step reports one long-running step. On a terminal it animates a spinner
// and finishes with a check or failure mark; elsewhere it is silent so
// piped stderr stays clean.
type Step struct {
	s       *spinner.Spinner
	w       io.Writer
	symbols ProgressSymbols
	label   string
}

// Start begins a step labelled label. w is the stream the spinner draws on.
func Start(w io.Writer, caps TerminalCapabilities, label string) *Step {
	step := &Step{w: w, symbols: SelectSymbols(caps), label: label}
	if !caps.IsTTY {
		return step
	}

	step.s = spinner.New(spinner.CharSets[step.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	step.s.Suffix = " " + label
	if caps.SupportsColor {
		_ = step.s.Color("cyan")
	}
	step.s.Start()
	return step
}

// Done stops the spinner and marks the step as succeeded or failed.
func (p *Step) Done(err error) {
	if p == nil || p.s == nil {
		return
	}
	p.s.Stop()
	mark := p.symbols.Checkmark
	if err != nil {
		mark = p.symbols.Failure
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, p.label)
}
