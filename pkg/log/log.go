// Package log provides structured logging for panelkit components.
//
// The package wraps github.com/rs/zerolog behind a small Logger
// interface so that estimators can log fit/transform lifecycle events
// without binding to a concrete logging backend. A process-wide
// default provider is available through SetupLogger and
// GetLoggerWithName; libraries embedding panelkit can install their
// own provider with SetProvider.
package log

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Structured logging keys shared by all panelkit components.
const (
	ModelNameKey  = "model"
	ComponentKey  = "component"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	RowsKey       = "rows"
	ColumnsKey    = "columns"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	DurationMsKey = "duration_ms"
	ErrorKey      = "error"
)

// Operation values for OperationKey.
const (
	OperationFit       = "fit"
	OperationTransform = "transform"
	OperationInverse   = "inverse_transform"
)

// Phase values for PhaseKey.
const (
	PhaseTraining  = "training"
	PhaseInference = "inference"
)

// Level is the minimum severity a provider emits.
type Level int8

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	Disabled
)

// ToLogLevel parses a level name ("debug", "info", "warn", "error",
// "disabled"). Unknown names map to InfoLevel.
func ToLogLevel(name string) Level {
	switch name {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "disabled", "off":
		return Disabled
	default:
		return InfoLevel
	}
}

// Logger is the structured logging contract used by estimators.
// Key-value pairs are passed as alternating keys and values, the way
// zerolog's Fields and slog's With treat variadic arguments.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})

	// With returns a child logger with the given fields attached to
	// every subsequent event.
	With(keysAndValues ...interface{}) Logger
}

// LoggerProvider creates named loggers.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
}

var (
	providerMu      sync.RWMutex
	defaultProvider LoggerProvider
)

// SetProvider installs the process-wide logger provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultProvider = p
}

// SetupLogger installs a zerolog-backed default provider at the given
// level name. Intended for application entry points.
func SetupLogger(level string) {
	SetProvider(NewZerologProvider(ToLogLevel(level)))
}

// GetLoggerWithName returns a named logger from the default provider,
// installing an info-level zerolog provider on first use.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	p := defaultProvider
	providerMu.RUnlock()

	if p == nil {
		providerMu.Lock()
		if defaultProvider == nil {
			defaultProvider = NewZerologProvider(InfoLevel)
		}
		p = defaultProvider
		providerMu.Unlock()
	}
	return p.GetLoggerWithName(name)
}

// LogError logs err with msg through the default provider.
func LogError(err error, msg string) {
	GetLoggerWithName("panelkit").Error(msg, ErrorKey, err)
}

// zerologProvider adapts zerolog to the LoggerProvider contract.
type zerologProvider struct {
	root zerolog.Logger
}

// NewZerologProvider creates a LoggerProvider writing JSON events to
// stderr at the given minimum level.
func NewZerologProvider(level Level) LoggerProvider {
	zl := zerolog.New(os.Stderr).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologProvider{root: zl}
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case Disabled:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (p *zerologProvider) GetLogger() Logger {
	return &zerologLogger{logger: p.root}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{logger: p.root.With().Str("logger", name).Logger()}
}

type zerologLogger struct {
	logger zerolog.Logger
}

// WrapZerolog adapts an existing zerolog.Logger to the Logger
// contract, for embedders that already configure zerolog themselves.
func WrapZerolog(zl zerolog.Logger) Logger {
	return &zerologLogger{logger: zl}
}

func (l *zerologLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.emit(l.logger.Debug(), msg, keysAndValues)
}

func (l *zerologLogger) Info(msg string, keysAndValues ...interface{}) {
	l.emit(l.logger.Info(), msg, keysAndValues)
}

func (l *zerologLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.emit(l.logger.Warn(), msg, keysAndValues)
}

func (l *zerologLogger) Error(msg string, keysAndValues ...interface{}) {
	l.emit(l.logger.Error(), msg, keysAndValues)
}

func (l *zerologLogger) With(keysAndValues ...interface{}) Logger {
	ctx := l.logger.With()
	for k, v := range pairs(keysAndValues) {
		ctx = ctx.Interface(k, v)
	}
	return &zerologLogger{logger: ctx.Logger()}
}

func (l *zerologLogger) emit(ev *zerolog.Event, msg string, keysAndValues []interface{}) {
	for k, v := range pairs(keysAndValues) {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// pairs folds alternating keys and values into a map, stringifying
// non-string keys and dropping a trailing unpaired value.
func pairs(keysAndValues []interface{}) map[string]interface{} {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
