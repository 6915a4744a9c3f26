package view

import (
	"fmt"
	"io"
)

// Alerter shows an error to the user.
type Alerter interface {
	Alert(err error)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(err error)

func (f AlertFunc) Alert(err error) { f(err) }

// WriterAlerter prints alerts as "error: <message>" lines.
type WriterAlerter struct {
	w io.Writer
}

// NewWriterAlerter returns an Alerter writing to w.
func NewWriterAlerter(w io.Writer) *WriterAlerter {
	return &WriterAlerter{w: w}
}

func (a *WriterAlerter) Alert(err error) {
	fmt.Fprintf(a.w, "error: %v\n", err)
}
