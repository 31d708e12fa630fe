package utils

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	flagutils "github.com/temirov/gitp/internal/utils/flags"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	consoleTimeLayoutConstant            = "15:04:05"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// SupportedLogFormats lists the accepted --log-format values.
func SupportedLogFormats() []string {
	return []string{string(LogFormatConsole), string(LogFormatStructured)}
}

// SupportedLogLevels lists the accepted --log-level values.
func SupportedLogLevels() []string {
	return []string{string(LogLevelDebug), string(LogLevelInfo), string(LogLevelWarn), string(LogLevelError)}
}

// ParseLogLevel normalizes a textual level and reports unsupported values.
func ParseLogLevel(value string) (LogLevel, error) {
	matchedLevel, matched := flagutils.MatchChoice(value, SupportedLogLevels())
	if !matched {
		return "", fmt.Errorf(unsupportedLogLevelTemplateConstant, value)
	}
	return LogLevel(matchedLevel), nil
}

// ParseLogFormat normalizes a textual format and reports unsupported values.
func ParseLogFormat(value string) (LogFormat, error) {
	matchedFormat, matched := flagutils.MatchChoice(value, SupportedLogFormats())
	if !matched {
		return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, value)
	}
	return LogFormat(matchedFormat), nil
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	outputWriter io.Writer
}

// NewLoggerFactory constructs a logger factory writing to standard error.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// NewLoggerFactoryWithWriter constructs a logger factory writing to the provided writer.
func NewLoggerFactoryWithWriter(outputWriter io.Writer) *LoggerFactory {
	return &LoggerFactory{outputWriter: outputWriter}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	logLevel, levelError := ParseLogLevel(string(requestedLogLevel))
	if levelError != nil {
		return nil, levelError
	}
	logFormat, formatError := ParseLogFormat(string(requestedLogFormat))
	if formatError != nil {
		return nil, formatError
	}

	core := zapcore.NewCore(factory.buildEncoder(logFormat), zapcore.Lock(zapcore.AddSync(factory.resolveWriter())), zap.NewAtomicLevelAt(logLevelMapping[logLevel]))
	if logFormat == LogFormatStructured {
		return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
	}
	return zap.New(core), nil
}

func (factory *LoggerFactory) buildEncoder(logFormat LogFormat) zapcore.Encoder {
	if logFormat == LogFormatStructured {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	encoderConfiguration := zap.NewDevelopmentEncoderConfig()
	encoderConfiguration.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayoutConstant)
	encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfiguration.CallerKey = zapcore.OmitKey
	encoderConfiguration.StacktraceKey = zapcore.OmitKey
	return zapcore.NewConsoleEncoder(encoderConfiguration)
}

func (factory *LoggerFactory) resolveWriter() io.Writer {
	if factory == nil || factory.outputWriter == nil {
		return os.Stderr
	}
	return factory.outputWriter
}
