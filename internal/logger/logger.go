// Package logger writes stage-tagged log lines:
//
//	[15:04:05.000] [LEVEL] [STAGE] message | detail
//
// Levels are INFO, ANALYSIS and RISK. RISK lines are always written; the
// others only in verbose mode. An optional archive receives every line.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	LevelInfo     = "INFO"
	LevelAnalysis = "ANALYSIS"
	LevelRisk     = "RISK"
)

type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	archive io.Writer
	verbose bool
	now     func() time.Time
}

func New(out io.Writer, verbose bool) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out, verbose: verbose, now: time.Now}
}

func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// SetArchive mirrors every line, regardless of level, to w.
func (l *Logger) SetArchive(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.archive = w
}

func (l *Logger) Log(level, stage, message, detail string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := Format(l.now(), level, stage, message, detail)
	if l.verbose || level == LevelRisk {
		_, _ = io.WriteString(l.out, line)
	}
	if l.archive != nil {
		_, _ = io.WriteString(l.archive, line)
	}
}

func Format(t time.Time, level, stage, message, detail string) string {
	line := fmt.Sprintf("[%s] [%s] [%s] %s", t.Format("15:04:05.000"), level, stage, message)
	if strings.TrimSpace(detail) != "" {
		line += " | " + detail
	}
	return line + "\n"
}

// OpenArchive appends to a session log file under dir, creating it if needed.
func OpenArchive(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	name := "session-" + now.Format("20060102-150405") + ".log"
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	return f, nil
}
