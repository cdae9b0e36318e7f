package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"cms-extensions/internal/config"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

var (
	logMutex sync.Mutex
	infoLog  = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	warnLog  = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
	debugLog = log.New(os.Stderr, "DEBUG: ", log.Ldate|log.Ltime)

	rotators     []*lumberjack.Logger
	debugEnabled atomic.Bool
)

// SetupLogging routes every level to its own rotating file under cfg.Dir.
// Output is mirrored to the console only when it is attached to a terminal.
func SetupLogging(cfg config.LoggingConfig) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("logger: create %s: %w", cfg.Dir, err)
	}

	logMutex.Lock()
	defer logMutex.Unlock()

	closeRotators()
	infoFile := rotatingFile(cfg, "info.log")
	warnFile := rotatingFile(cfg, "warn.log")
	errorFile := rotatingFile(cfg, "error.log")

	infoLog = log.New(withConsole(infoFile, os.Stdout), "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(withConsole(warnFile, os.Stdout), "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(withConsole(errorFile, os.Stderr), "ERROR: ", log.Ldate|log.Ltime)
	debugLog = log.New(withConsole(infoFile, os.Stdout), "DEBUG: ", log.Ldate|log.Ltime)

	// Override Go's default log
	log.SetOutput(infoLog.Writer())
	return nil
}

// CloseLogging flushes and closes the rotating files and sends further
// entries back to stderr.
func CloseLogging() {
	logMutex.Lock()
	defer logMutex.Unlock()

	closeRotators()
	infoLog.SetOutput(os.Stderr)
	warnLog.SetOutput(os.Stderr)
	errorLog.SetOutput(os.Stderr)
	debugLog.SetOutput(os.Stderr)
	log.SetOutput(os.Stderr)
}

// SetDebug toggles Debug output.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether Debug entries are written.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

func rotatingFile(cfg config.LoggingConfig, name string) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, name),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	rotators = append(rotators, l)
	return l
}

func closeRotators() {
	for _, r := range rotators {
		_ = r.Close()
	}
	rotators = nil
}

func withConsole(w io.Writer, console *os.File) io.Writer {
	if term.IsTerminal(int(console.Fd())) {
		return io.MultiWriter(console, w)
	}
	return w
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	name := runtime.FuncForPC(pc).Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func Log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)

	logMutex.Lock()
	defer logMutex.Unlock()

	logEntry := fmt.Sprintf("[%s] %s", getCallerInfo(), message)

	switch level {
	case LevelDebug:
		debugLog.Println(logEntry)
	case LevelWarn:
		warnLog.Println(logEntry)
	case LevelError:
		errorLog.Println(logEntry)
	default:
		infoLog.Println(logEntry)
	}
}

func Info(format string, v ...interface{}) {
	Log(LevelInfo, format, v...)
}

func Warn(format string, v ...interface{}) {
	Log(LevelWarn, format, v...)
}

func Error(format string, v ...interface{}) {
	Log(LevelError, format, v...)
}

func Debug(format string, v ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	Log(LevelDebug, format, v...)
}
