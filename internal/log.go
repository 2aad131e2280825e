package internal

import (
	"fmt"

	"github.com/golang/glog"
)

// Level selects how chatty the assembler is.
type Level int

//go:generate go tool stringer -linecomment -type=Level
const (
	LevelQuiet   = Level(-1) // quiet
	LevelInfo    = Level(0)  // info
	LevelVerbose = Level(1)  // verbose
	LevelDebug   = Level(2)  // debug
)

// Logf logs a message at the level 'at', if enabled.
func (lvl Level) Logf(at Level, format string, args ...any) {
	if at > lvl || lvl == LevelQuiet {
		return
	}
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}

// Warnf logs a warning unless quiet.
func (lvl Level) Warnf(format string, args ...any) {
	if lvl == LevelQuiet {
		return
	}
	glog.WarningDepth(1, fmt.Sprintf(format, args...))
}

// Enabled returns true if messages at level 'at' are emitted.
func (lvl Level) Enabled(at Level) bool {
	return lvl != LevelQuiet && at <= lvl
}
