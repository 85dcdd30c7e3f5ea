// Package sklog provides leveled, glog-style logging for the multisection
// tool: Info/Warning/Error for progress and recoverable faults, Fatal for
// unrecoverable session aborts.
package sklog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Severity is the level a log line was emitted at.
type Severity int

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Fatal
)

func (s Severity) letter() byte {
	switch s {
	case Debug:
		return 'D'
	case Info:
		return 'I'
	case Warning:
		return 'W'
	case Error:
		return 'E'
	default:
		return 'F'
	}
}

var (
	mu        sync.Mutex
	out       io.Writer = os.Stderr
	threshold           = Info
	exitFunc            = os.Exit
)

// SetOutput redirects all log lines to w. Exposed for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetThreshold sets the minimum severity that is actually written. -verbose
// wiring in cmd/multisection lowers this to Debug.
func SetThreshold(s Severity) {
	mu.Lock()
	defer mu.Unlock()
	threshold = s
}

func log(calldepth int, severity Severity, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if severity < threshold {
		return
	}
	_, file, line, ok := runtime.Caller(calldepth)
	if !ok {
		file, line = "???", 0
	} else {
		file = filepath.Base(file)
	}
	now := time.Now()
	fmt.Fprintf(out, "%c%02d%02d %02d:%02d:%02d.%06d %s:%d] %s\n",
		severity.letter(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), now.Nanosecond()/1000,
		file, line, msg)
	if severity == Fatal {
		exitFunc(1)
	}
}

func Debug(args ...interface{})                   { log(3, Debug, fmt.Sprint(args...)) }
func Debugf(format string, args ...interface{})   { log(3, Debug, fmt.Sprintf(format, args...)) }
func Info(args ...interface{})                    { log(3, Info, fmt.Sprint(args...)) }
func Infof(format string, args ...interface{})    { log(3, Info, fmt.Sprintf(format, args...)) }
func Warning(args ...interface{})                 { log(3, Warning, fmt.Sprint(args...)) }
func Warningf(format string, args ...interface{}) { log(3, Warning, fmt.Sprintf(format, args...)) }
func Error(args ...interface{})                   { log(3, Error, fmt.Sprint(args...)) }
func Errorf(format string, args ...interface{})   { log(3, Error, fmt.Sprintf(format, args...)) }

// Fatal logs at Fatal severity and terminates the process. The multisection
// driver never calls this directly for ordinary faults (see skerr/core
// error taxonomy); it is reserved for cmd/multisection's top-level main.
func Fatal(args ...interface{})                 { log(3, Fatal, fmt.Sprint(args...)) }
func Fatalf(format string, args ...interface{}) { log(3, Fatal, fmt.Sprintf(format, args...)) }
