package notify

import (
	"fmt"
	"io"
)

// Writer is a Notifier that prints notices to output streams. Info
// notices go to Out and honor Quiet; error notices always go to ErrOut.
type Writer struct {
	Out    io.Writer
	ErrOut io.Writer
	Quiet  bool
}

func (w Writer) Notify(n Notice) {
	if n.Severity == Error {
		fmt.Fprintf(w.ErrOut, "error: %s\n", n.Message)
		return
	}
	if !w.Quiet {
		fmt.Fprintln(w.Out, n.Message)
	}
}
