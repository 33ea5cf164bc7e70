package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02T15-04-05.000"

type Logger struct {
	appEnv  string
	appName string
	l       *zap.Logger
}

type Options struct {
	AppName string
	AppEnv  string
	// Level is one of debug, info, warn, error. Empty means debug.
	Level string
	// Format is json or console. Empty means json.
	Format string
}

// NewZapLogger builds a logger that writes to every writer given, or to stdout
// when none are passed.
func NewZapLogger(opts Options, writers ...io.Writer) *Logger {
	var syncers []zapcore.WriteSyncer

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = timeEncoder(timeLayout, time.UTC)
	cfg.TimeKey = "timestamp"

	if len(writers) == 0 {
		syncers = append(syncers, os.Stdout)
	} else {
		for _, w := range writers {
			syncers = append(syncers, zapcore.AddSync(w))
		}
	}

	encoder := zapcore.NewJSONEncoder(cfg)
	if opts.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(syncers...),
		parseLevel(opts.Level),
	)

	return &Logger{
		appEnv:  opts.AppEnv,
		appName: opts.AppName,
		l:       zap.New(core),
	}
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{appName: "nop", l: zap.NewNop()}
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams(2)
	l.l.WithOptions(zap.Fields(firstFields(fields)...)).Error(
		err.Error(),
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("error", err.Error()),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
		zap.Stack("stack"),
	)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.write(zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.write(zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.write(zapcore.DebugLevel, msg, fields)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.write(zapcore.FatalLevel, msg, fields)
}

// Printf lets the logger back gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...any) {
	l.write(zapcore.DebugLevel, fmt.Sprintf(format, args...), map[string]any{"component": "gorm"})
}

func (l *Logger) write(level zapcore.Level, msg string, fields any) {
	var zapFields []zap.Field
	switch f := fields.(type) {
	case []map[string]any:
		zapFields = firstFields(f)
	case map[string]any:
		zapFields = mapToZapFields(f)
	}

	ce := l.l.WithOptions(zap.Fields(zapFields...)).Check(level, msg)
	if ce == nil {
		return
	}

	file, line, funcName := getRuntimeParams(3)
	ce.Write(
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.Any("caller_file", file),
		zap.Any("caller_line", line),
		zap.Any("caller_func", funcName),
	)
}

func firstFields(fields []map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	return mapToZapFields(fields[0])
}

func mapToZapFields(data map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(data))

	for k, v := range data {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}

func parseLevel(level string) zapcore.Level {
	if level == "" {
		return zapcore.DebugLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// getRuntimeParams reports the frame skip levels above itself.
func getRuntimeParams(skip int) (file string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "not_defined", 0, "not_defined"
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}
	return file, line, funcName
}

func timeEncoder(layout string, location *time.Location) func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		t = t.In(location)
		type appendTimeEncoder interface {
			AppendTimeLayout(time.Time, string)
		}
		if enc, ok := enc.(appendTimeEncoder); ok {
			enc.AppendTimeLayout(t, layout)
			return
		}
		enc.AppendString(t.Format(layout))
	}
}
