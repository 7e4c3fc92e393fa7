// -----------------------------------------------------------------------
// Crash Protection - fatal panic reports for the server binaries
// -----------------------------------------------------------------------

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// CrashLogDir is where crash reports are written
var CrashLogDir = "./logs"

// InstallCrashHandler sets the crash report directory and makes sure it exists.
// Call it first in main, then defer RecoverWithCrashFile.
func InstallCrashHandler(logDir string) {
	if logDir != "" {
		CrashLogDir = logDir
	}
	if err := os.MkdirAll(CrashLogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: Failed to create log directory: %v\n", err)
	}
}

// WriteCrashFile writes a crash report and returns its path, or "" when the file could not be written
func WriteCrashFile(panicVal interface{}, stackTrace string) string {
	now := time.Now()
	crashPath := filepath.Join(CrashLogDir, fmt.Sprintf("crash-%s.log", now.Format("2006-01-02T15-04-05")))

	var report strings.Builder
	fmt.Fprintf(&report, "=== PROPCAST CRASH REPORT ===\n")
	fmt.Fprintf(&report, "Time: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&report, "Version: %s\n\n", GetFullVersion())
	fmt.Fprintf(&report, "=== PANIC VALUE ===\n%v\n\n", panicVal)
	fmt.Fprintf(&report, "=== STACK TRACE ===\n%s\n", stackTrace)
	fmt.Fprintf(&report, "=== SYSTEM INFO ===\n")
	fmt.Fprintf(&report, "NumGoroutine: %d\nGOOS: %s\nGOARCH: %s\n", runtime.NumGoroutine(), runtime.GOOS, runtime.GOARCH)

	if err := os.WriteFile(crashPath, []byte(report.String()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: Failed to write crash file: %v\n%s", err, report.String())
		return ""
	}

	fmt.Fprintf(os.Stderr, "\n!!! FATAL CRASH - Report saved to: %s !!!\n", crashPath)
	return crashPath
}

// GetStackTrace returns the current goroutine's stack trace
func GetStackTrace() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// RecoverWithCrashFile is a deferred recovery that writes a crash report and exits.
// Usage: defer common.RecoverWithCrashFile()
func RecoverWithCrashFile() {
	if r := recover(); r != nil {
		WriteCrashFile(r, GetStackTrace())
		os.Exit(1)
	}
}
