package observe

import (
	"encoding/json"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second

	logTimeLayout = "2006-01-02T15-04-05.000"
)

// SentryOptions configures the hook. An empty DSN disables reporting.
type SentryOptions struct {
	AppEnv  string
	AppName string
	DSN     string
	Debug   bool
}

// SentryHook is an io.Writer fed with zap JSON lines. Error and fatal entries
// are forwarded to Sentry as events.
type SentryHook struct {
	appEnv  string
	appName string
	capture func(*sentry.Event) *sentry.EventID
}

func NewSentryHook(opts SentryOptions) (*SentryHook, error) {
	if opts.DSN == "" {
		return nil, errors.New("sentry: empty DSN")
	}

	transport := sentry.NewHTTPTransport()
	transport.Timeout = _sentryServerRequestTimeout

	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            opts.Debug,
		Dsn:              opts.DSN,
		Environment:      opts.AppEnv,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       opts.AppName,
		Transport:        transport,
	}); err != nil {
		return nil, errors.Wrap(err, "sentry: init")
	}

	return &SentryHook{
		appEnv:  opts.AppEnv,
		appName: opts.AppName,
		capture: sentry.CaptureEvent,
	}, nil
}

type logLine struct {
	Level      string `json:"level"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Timestamp  string `json:"timestamp"`
}

// Write never fails: a line that cannot be decoded is dropped so the primary
// log sink keeps working.
func (h *SentryHook) Write(p []byte) (int, error) {
	event, err := h.eventFromLine(p)
	if err == nil && event != nil {
		h.capture(event)
	}
	return len(p), nil
}

func (h *SentryHook) Flush() bool {
	return sentry.Flush(_sentryFlushTimeout)
}

func (h *SentryHook) eventFromLine(p []byte) (*sentry.Event, error) {
	var line logLine
	if err := json.Unmarshal(p, &line); err != nil {
		return nil, errors.Wrap(err, "sentry hook: decode log line")
	}

	level, err := zapcore.ParseLevel(line.Level)
	if err != nil {
		return nil, errors.Wrap(err, "sentry hook: parse zap level")
	}
	if level < zapcore.ErrorLevel || line.Message == "" {
		return nil, nil
	}

	event := sentry.NewEvent()
	event.Environment = h.appEnv
	event.ServerName = h.appName
	event.Level = mapLevel(level)
	event.Message = line.Message
	if ts, err := time.ParseInLocation(logTimeLayout, line.Timestamp, time.UTC); err == nil {
		event.Timestamp = ts
	}
	event.Extra["error"] = line.Error
	event.Extra["caller_file"] = line.CallerFile
	event.Extra["caller_line"] = line.CallerLine
	event.Extra["caller_func"] = line.CallerFunc
	event.Extra["stack"] = line.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:  line.Message,
		Value: line.Error,
	})

	return event, nil
}

func mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}
	return sentry.LevelDebug
}
