// -----------------------------------------------------------------------
// Crash Protection - Fatal panic reports for post-mortem analysis
// -----------------------------------------------------------------------

package common

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// crashLogDir is where crash reports land; set once at startup.
var crashLogDir = "./logs"

// InstallCrashHandler sets the crash report directory and makes sure it
// exists. Call at the start of main.
func InstallCrashHandler(logDir string) {
	if logDir != "" {
		crashLogDir = logDir
	}
	if err := os.MkdirAll(crashLogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create crash log directory: %v\n", err)
	}
}

// RecoverWithCrashFile is deferred at the top of goroutines whose death
// should take the process down: it writes a crash report and exits.
func RecoverWithCrashFile() {
	if r := recover(); r != nil {
		writeCrashFile(r, GetStackTrace())
		os.Exit(1)
	}
}

// GetStackTrace returns the current goroutine's stack trace.
func GetStackTrace() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

func writeCrashFile(panicVal interface{}, stackTrace string) {
	var report bytes.Buffer
	fmt.Fprintf(&report, "nyaya crash report\n")
	fmt.Fprintf(&report, "time: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&report, "version: %s\n", GetFullVersion())
	fmt.Fprintf(&report, "goroutines: %d\n\n", runtime.NumGoroutine())
	fmt.Fprintf(&report, "panic: %v\n\n%s\n", panicVal, stackTrace)
	fmt.Fprintf(&report, "--- all goroutines ---\n%s\n", allGoroutineStacks())

	path := filepath.Join(crashLogDir, fmt.Sprintf("crash-%s.log", time.Now().Format("2006-01-02T15-04-05")))
	if err := os.WriteFile(path, report.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write crash report: %v\n%s", err, report.String())
		return
	}

	fmt.Fprintf(os.Stderr, "fatal panic: %v\ncrash report written to %s\n", panicVal, path)
}

func allGoroutineStacks() string {
	buf := make([]byte, 64*1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return string(buf[:n])
		}
		if len(buf) >= 16*1024*1024 {
			return string(buf[:n])
		}
		buf = make([]byte, len(buf)*2)
	}
}
