// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ------------------- global loggers -------------------

const logFlags = log.Ldate | log.Ltime | log.Lshortfile

// four logger levels accessible throughout the application.
// They write to stdout until InitLogger attaches a log file.
var (
	Info  = log.New(os.Stdout, "INFO: ", logFlags)
	Warn  = log.New(os.Stdout, "WARN: ", logFlags)
	Error = log.New(os.Stdout, "ERROR: ", logFlags)
	Debug = log.New(os.Stdout, "DEBUG: ", logFlags)
)

// ------------------- logger initialization -------------------

// InitLogger (re)initializes the logging system. It:
// - Ensures `dir` exists.
// - Creates a timestamped log file in `dir`.
// - Writes logs to both the file and stdout.
//
// An empty dir keeps the stdout-only loggers.
func InitLogger(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	logFileName := filepath.Join(dir, time.Now().Format("2006-01-02_15-04-05")+".log")
	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
	if err != nil {
		return err
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	setOutput(multiWriter)
	return nil
}

// SetLogLevel adjusts the Debug logger’s output depending on environment.
// Production discards debug output entirely.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}

// SetOutput redirects every logger to w. Tests use it to capture or silence output.
func SetOutput(w io.Writer) {
	setOutput(w)
}

func setOutput(w io.Writer) {
	Info.SetOutput(w)
	Warn.SetOutput(w)
	Error.SetOutput(w)
	Debug.SetOutput(w)
}
