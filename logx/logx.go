// Package logx configures the process-wide zerolog console logger.
package logx

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// callerPad is the column width the caller field is padded to. This repo
// ships more than one binary (cmd/kerneldemo today, the bench harness
// potentially logging in the future); a fixed pad keeps their output
// visually aligned when interleaved in the same terminal or log
// aggregator, unlike a single-binary tool that can pick whatever width
// looks right for its own file names.
const callerPad = 28

// NewLogger returns a zerolog logger writing human-readable console output
// at the given level, tagged with component so multiple binaries sharing
// this logging setup can be told apart in aggregated output, with
// file:line caller info for every event.
func NewLogger(level zerolog.Level, component string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if file[i] == '/' {
				short = file[i+1:]
				break
			}
		}
		pad := fmt.Sprintf("%%-%ds", callerPad)
		return fmt.Sprintf(pad, fmt.Sprintf("%s:%d", short, line))
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Caller()
	if component != "" {
		logger = logger.Str("component", component)
	}
	return logger.Logger()
}
