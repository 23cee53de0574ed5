// Package logging provides the verbosity-gated logger used by the
// reporting run: messages go to the console and a logfile at
// independently configured verbosities, and fatal errors are recorded in
// a persistent flag so a later successful run can send a recovery notice.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity is one of the configured logging levels, ordered from
// quietest to noisiest.
type Verbosity int

const (
	None Verbosity = iota
	Error
	Warning
	Summary
	Detailed
	Debug
	All
)

var verbosityNames = map[string]Verbosity{
	"none":     None,
	"error":    Error,
	"warning":  Warning,
	"summary":  Summary,
	"detailed": Detailed,
	"debug":    Debug,
	"all":      All,
}

// ParseVerbosity converts a config string into a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	v, ok := verbosityNames[s]
	if !ok {
		return None, fmt.Errorf("unknown verbosity %q", s)
	}
	return v, nil
}

// Mailer sends plain-text alert emails. The mail package provides the
// SMTP implementation; tests inject fakes.
type Mailer interface {
	Send(subject, body string) error
}

// Settings configures a Logger.
type Settings struct {
	LogfileName      string // empty disables the file sink
	LogfileMaxLines  int    // 0 disables trimming
	LogfileVerbosity string
	ConsoleVerbosity string
}

// Logger writes leveled messages to a console sink and an optional file
// sink, each gated by its own verbosity. It also owns the persistent
// fatal-error flag.
type Logger struct {
	console       *zap.SugaredLogger
	file          *zap.SugaredLogger
	consoleV      Verbosity
	fileV         Verbosity
	fatal         *FatalState
	mailer        Mailer
	subjectPrefix string
	fatalsThisRun int
}

// New builds a Logger from settings. The fatal flag lives in a sidecar
// file next to the logfile (or in the working directory when no logfile
// is configured).
func New(s Settings) (*Logger, error) {
	cv, err := ParseVerbosity(s.ConsoleVerbosity)
	if err != nil {
		return nil, err
	}
	fv, err := ParseVerbosity(s.LogfileVerbosity)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)

	l := &Logger{
		console:  zap.New(consoleCore).Sugar(),
		consoleV: cv,
		fileV:    fv,
		fatal:    NewFatalState(fatalFlagPath(s.LogfileName)),
	}

	if s.LogfileName != "" {
		if err := trimLogfile(s.LogfileName, s.LogfileMaxLines); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(s.LogfileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		fileCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(f),
			zapcore.DebugLevel,
		)
		l.file = zap.New(fileCore).Sugar()
	}

	return l, nil
}

// SetMailer attaches the alert mailer used for fatal errors and
// recovery notices.
func (l *Logger) SetMailer(m Mailer, subjectPrefix string) {
	l.mailer = m
	l.subjectPrefix = subjectPrefix
}

// zapLevel maps a message verbosity to the zap call used to emit it.
func emit(z *zap.SugaredLogger, v Verbosity, msg string) {
	switch v {
	case Error:
		z.Error(msg)
	case Warning:
		z.Warn(msg)
	case Summary:
		z.Info(msg)
	default:
		z.Debug(msg)
	}
}

// Logf writes a message at the given verbosity to every sink whose
// configured verbosity admits it.
func (l *Logger) Logf(v Verbosity, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.consoleV >= v && l.consoleV != None {
		emit(l.console, v, msg)
	}
	if l.file != nil && l.fileV >= v && l.fileV != None {
		emit(l.file, v, msg)
	}
}

func (l *Logger) Errorf(format string, args ...any)  { l.Logf(Error, format, args...) }
func (l *Logger) Warnf(format string, args ...any)   { l.Logf(Warning, format, args...) }
func (l *Logger) Infof(format string, args ...any)   { l.Logf(Summary, format, args...) }
func (l *Logger) Detailf(format string, args ...any) { l.Logf(Detailed, format, args...) }
func (l *Logger) Debugf(format string, args ...any)  { l.Logf(Debug, format, args...) }

// Fatalf logs an error, records the persistent failure flag, and sends
// an alert email when a mailer is attached. It does not exit: the run
// carries on and reports failure through ordinary return values.
func (l *Logger) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.Logf(Error, "FATAL: %s", msg)
	l.fatalsThisRun++
	if err := l.fatal.Record(msg); err != nil {
		l.Logf(Error, "could not record fatal state: %v", err)
	}
	if l.mailer != nil {
		if err := l.mailer.Send(l.subjectPrefix+"Fatal error", msg); err != nil {
			l.Logf(Error, "could not send fatal alert email: %v", err)
		}
	}
}

// FatalsThisRun returns the number of fatal errors recorded since the
// logger was created.
func (l *Logger) FatalsThisRun() int { return l.fatalsThisRun }

// HadPriorFailure reports whether a previous run left the fatal flag set.
// It reflects the state at the last Record/Clear, so a fatal recorded in
// this run also counts.
func (l *Logger) HadPriorFailure() bool { return l.fatal.Has() }

// ClearFailure clears the persistent fatal flag.
func (l *Logger) ClearFailure() error { return l.fatal.Clear() }

// SendEmail sends a message through the attached mailer, if any.
func (l *Logger) SendEmail(subject, body string) error {
	if l.mailer == nil {
		l.Debugf("email disabled, not sending %q", subject)
		return nil
	}
	return l.mailer.Send(l.subjectPrefix+subject, body)
}

// Sync flushes the underlying sinks.
func (l *Logger) Sync() {
	_ = l.console.Sync()
	if l.file != nil {
		_ = l.file.Sync()
	}
}
