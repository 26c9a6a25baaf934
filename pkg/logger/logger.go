package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

type SimpleLogger struct {
	infoLog  *log.Logger
	errorLog *log.Logger
	debugLog *log.Logger
}

func New() Logger {
	return &SimpleLogger{
		infoLog:  log.New(os.Stdout, "[INFO] ", log.LstdFlags|log.Lshortfile),
		errorLog: log.New(os.Stderr, "[ERROR] ", log.LstdFlags|log.Lshortfile),
		debugLog: log.New(os.Stdout, "[DEBUG] ", log.LstdFlags|log.Lshortfile),
	}
}

func (l *SimpleLogger) Info(msg string, args ...any) {
	l.infoLog.Println(format(msg, args...))
}

func (l *SimpleLogger) Error(msg string, args ...any) {
	l.errorLog.Println(format(msg, args...))
}

func (l *SimpleLogger) Debug(msg string, args ...any) {
	l.debugLog.Println(format(msg, args...))
}

// format renders trailing args as key=value pairs; a dangling odd arg is
// appended as-is.
func format(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 != 0 {
		fmt.Fprintf(&b, " %v", args[len(args)-1])
	}
	return b.String()
}
