package ui

import "fmt"

// Level controls what the run prints. ErrorsOnly is the -x mode: progress
// is suppressed but diagnostics still show, so it is not simply "less than
// Normal".
type Level int

const (
	Quiet Level = iota
	ErrorsOnly
	Normal
	Verbose
)

type Logger struct {
	level Level
}

func NewLogger(level Level) *Logger {
	return &Logger{level: level}
}

func (l *Logger) Level() Level { return l.level }

// Infof prints per-chapter and per-arc progress.
func (l *Logger) Infof(format string, args ...any) {
	if l.level >= Normal {
		fmt.Printf(format, args...)
	}
}

// Verbosef prints extra diagnostic detail.
func (l *Logger) Verbosef(format string, args ...any) {
	if l.level >= Verbose {
		fmt.Printf("[VERBOSE] "+format, args...)
	}
}

// Debugf prints diagnostics in both verbose and errors-only modes.
func (l *Logger) Debugf(format string, args ...any) {
	if l.level == ErrorsOnly || l.level >= Verbose {
		fmt.Printf("[DEBUG] "+format, args...)
	}
}

// Errorf always prints; skipped chapters and arcs must be visible even in
// quiet mode.
func (l *Logger) Errorf(format string, args ...any) {
	fmt.Printf("[ERROR] "+format, args...)
}
