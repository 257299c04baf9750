// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package depthmap

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// NewLogger returns a human readable logger writing to w. If verbose is
// false only warnings and errors are shown.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// logln records an info level message made from v, formatted as with
// fmt.Println
func logln(l zerolog.Logger, v ...interface{}) {
	s := fmt.Sprintln(v...)
	l.Info().Msg(s[:len(s)-1])
}
