package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger for debug messages. The TUI owns stdout, so output goes to a file.
var (
	logger  = log.NewWithOptions(io.Discard, log.Options{Prefix: "todoshell"})
	logFile *os.File
)

// Log prints debug messages to the log file if verbose mode is enabled
func Log(text string, args ...interface{}) {
	logger.Debugf(text, args...)
}

// Logger returns the shared structured logger
func Logger() *log.Logger {
	return logger
}

// DefaultLogPath returns the per-day log file path
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("todoshell_%s.log", time.Now().Format("2006-01-02")))
}

// InitLogger initializes the logging system
func InitLogger(verbose bool, path string) error {
	if !verbose {
		logger.SetOutput(io.Discard)
		return nil
	}

	if path == "" {
		path = DefaultLogPath()
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	logger = log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          "todoshell",
	})

	Log("Verbose logging enabled")
	return nil
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
