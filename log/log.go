// Package log provides the application's file-backed loggers.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	InfoLog    = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)
)

var logFileName = filepath.Join(os.TempDir(), "callstrip.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program to set up logging.
// Until then every logger writes to io.Discard, so library code and tests can log freely.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}

	fmtS := "%s"
	InfoLog = log.New(f, fmt.Sprintf(fmtS, "INFO:"), log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, fmt.Sprintf(fmtS, "WARNING:"), log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, fmt.Sprintf(fmtS, "ERROR:"), log.Ldate|log.Ltime|log.Lshortfile)

	globalLogFile = f

	InitDebug()
}

// Close flushes the debug profile and closes the log file.
func Close() {
	GetProfiler().LogStats()
	CloseDebug()
	if globalLogFile != nil {
		_ = globalLogFile.Close()
		globalLogFile = nil
		fmt.Println("wrote logs to " + logFileName)
	}
}
