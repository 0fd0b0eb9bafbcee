package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const (
	LOG_ENABLE             = "QEXEC_LOGLEVEL"
	LOG_PATH               = "QEXEC_LOGPATH"
	LOG_TIMEOUT            = "QEXEC_LOGTIMEOUT"
	LOG_FILENAME           = "qexec.log"
	LOG_DEFAULT_TIMEOUT    = 24
	QEXEC_DEBUG_LOGGING    = 10
	QEXEC_INFO_LOGGING     = 20
	QEXEC_WARNING_LOGGING  = 30
	QEXEC_ERROR_LOGGING    = 40
	QEXEC_CRITICAL_LOGGING = 50
)

var (
	Log     *log.Logger
	logOnce sync.Once
)

// Log records always go to stderr. QEXEC_LOGPATH adds a log file that is
// replaced once it is older than QEXEC_LOGTIMEOUT hours.
func logInit() {
	var wrt io.Writer = os.Stderr
	if logPath := os.Getenv(LOG_PATH); len(logPath) > 0 {
		timeout := LOG_DEFAULT_TIMEOUT
		if env := os.Getenv(LOG_TIMEOUT); len(env) > 0 {
			if t, err := strconv.Atoi(env); err == nil {
				timeout = t
			}
		}
		if f, err := openLogFile(logPath, timeout); err == nil {
			wrt = io.MultiWriter(os.Stderr, f)
		} else {
			log.Printf("logger cannot open file: %v", err)
		}
	}
	Log = log.New(wrt, "", log.LstdFlags)
}

// openLogFile opens dir/qexec.log for appending. The first line of the file
// is its RFC3339 creation time.
func openLogFile(dir string, timeout int) (*os.File, error) {
	logfile := filepath.Join(dir, LOG_FILENAME)
	if f, err := os.Open(logfile); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan()
		f.Close()
		if tag, terr := time.Parse(time.RFC3339, scanner.Text()); terr == nil {
			if int(time.Since(tag).Hours()) > timeout {
				os.Remove(logfile)
			}
		} else {
			os.Remove(logfile)
		}
	}
	f, err := os.OpenFile(logfile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("LogWriter: OpenFile: %w", err)
	}
	if stat, serr := f.Stat(); serr == nil && stat.Size() == 0 {
		f.WriteString(time.Now().Format(time.RFC3339) + "\n")
		f.Sync()
	}
	return f, nil
}

func logger() *log.Logger {
	logOnce.Do(logInit)
	return Log
}

// SetOutput redirects log records, mostly for tests.
func SetOutput(w io.Writer) {
	logger().SetOutput(w)
}

func LogLevel() int {
	if env, err := strconv.Atoi(os.Getenv(LOG_ENABLE)); err == nil {
		return env
	}
	return QEXEC_CRITICAL_LOGGING
}

func getLogLevel(level int) string {
	switch level {
	case QEXEC_DEBUG_LOGGING:
		return "DEBUG"
	case QEXEC_INFO_LOGGING:
		return "INFO"
	case QEXEC_WARNING_LOGGING:
		return "WARNING"
	case QEXEC_ERROR_LOGGING:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

func logObj(level int, name string, v interface{}) {
	if LogLevel() <= level {
		data, _ := json.MarshalIndent(v, "", " ")
		logger().Printf("%s %s:\n%s\n", getLogLevel(level), name, data)
	}
}

func logPrintf(level int, format string, a ...interface{}) {
	if LogLevel() <= level {
		logger().Printf(getLogLevel(level)+" "+format, a...)
	}
}

func DebugObj(name string, v interface{}) {
	logObj(QEXEC_DEBUG_LOGGING, name, v)
}

func DebugPrintf(format string, a ...interface{}) {
	logPrintf(QEXEC_DEBUG_LOGGING, format, a...)
}

func InfoObj(name string, v interface{}) {
	logObj(QEXEC_INFO_LOGGING, name, v)
}

func InfoPrintf(format string, a ...interface{}) {
	logPrintf(QEXEC_INFO_LOGGING, format, a...)
}

func WarningPrintf(format string, a ...interface{}) {
	logPrintf(QEXEC_WARNING_LOGGING, format, a...)
}

func ErrorPrintf(format string, a ...interface{}) {
	logPrintf(QEXEC_ERROR_LOGGING, format, a...)
}

func CriticalPrintf(format string, a ...interface{}) {
	logPrintf(QEXEC_CRITICAL_LOGGING, format, a...)
}
