package cli

import (
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// NewLogger returns a logger printing V(1) messages to w when debug is set,
// and a logger that drops everything otherwise.
func NewLogger(debug bool, w io.Writer) logr.Logger {
	if !debug {
		return logr.Discard()
	}
	stdr.SetVerbosity(1)
	return stdr.New(log.New(w, "debug: ", 0))
}
