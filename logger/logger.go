package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var (
	AppLogger    *log.Logger
	AccessLogger *log.Logger
	ErrorLogger  *log.Logger

	logLevel      string
	logPaths      [2]string
	appLogFile    *os.File
	accessLogFile *os.File
	initialized   bool
)

// levelRank orders the supported levels; a message is written when its rank
// is at or above the configured one.
var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// InitGlobalLoggers opens the application and access log files. An empty
// path keeps that logger on io.Discard. Calling it again with the same paths
// and level while the files are open is a no-op.
func InitGlobalLoggers(appLogPath, accessLogPath, level string) error {
	paths := [2]string{appLogPath, accessLogPath}
	if initialized && appLogFile != nil && accessLogFile != nil && paths == logPaths && strings.ToUpper(level) == logLevel {
		return nil
	}
	logPaths = paths
	if appLogFile != nil {
		appLogFile.Close()
		appLogFile = nil
	}
	if accessLogFile != nil {
		accessLogFile.Close()
		accessLogFile = nil
	}

	logLevel = strings.ToUpper(level)
	if _, ok := levelRank[logLevel]; !ok {
		logLevel = "INFO"
	}

	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	appWriter, actualAppLogPath := openLogFile(appLogPath, &appLogFile)
	AppLogger = log.New(appWriter, "APP: ", log.Ldate|log.Ltime|log.Lshortfile)

	accessWriter, actualAccessLogPath := openLogFile(accessLogPath, &accessLogFile)
	AccessLogger = log.New(accessWriter, "ACCESS: ", log.Ldate|log.Ltime)

	if !initialized {
		AppLogger.Printf("App logger initialized. Log level: %s. Output file: %s", logLevel, actualAppLogPath)
		AccessLogger.Printf("Access logger initialized. Output file: %s", actualAccessLogPath)
	}
	initialized = true
	return nil
}

func openLogFile(path string, dst **os.File) (io.Writer, string) {
	if path == "" {
		return io.Discard, "(discarded)"
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		ErrorLogger.Printf("Failed to create log directory %s: %v. Logs will be discarded.", dir, err)
		return io.Discard, "(discarded)"
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		ErrorLogger.Printf("Failed to open log file %s: %v. Logs will be discarded.", path, err)
		return io.Discard, "(discarded)"
	}
	*dst = f
	return f, path
}

func enabled(level string) bool {
	return levelRank[level] >= levelRank[logLevel]
}

func Info(format string, v ...interface{}) {
	if AppLogger != nil && enabled("INFO") {
		AppLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Debug(format string, v ...interface{}) {
	if AppLogger != nil && enabled("DEBUG") {
		AppLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	if AppLogger != nil && enabled("WARN") {
		AppLogger.Output(2, "WARN: "+fmt.Sprintf(format, v...))
	}
}

func Error(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Output(2, message)
	}
	if AppLogger != nil && appLogFile != nil {
		AppLogger.Output(2, message)
	}
}

func Fatal(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Fatal(message)
	} else {
		log.Fatal(message)
	}
}

// Access writes one line to the access log. Access lines are not filtered
// by level.
func Access(format string, v ...interface{}) {
	if AccessLogger != nil {
		AccessLogger.Printf(format, v...)
	}
}

func CloseLogFiles() {
	if appLogFile != nil {
		AppLogger.Println("Closing app log file.")
		appLogFile.Close()
		appLogFile = nil
	}
	if accessLogFile != nil {
		AccessLogger.Println("Closing access log file.")
		accessLogFile.Close()
		accessLogFile = nil
	}
	initialized = false // allow re-initialization (tests)
}
