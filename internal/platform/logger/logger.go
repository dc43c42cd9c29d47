package logger

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) hclog() hclog.Level {
	switch l {
	case Debug:
		return hclog.Debug
	case Warn:
		return hclog.Warn
	case Error:
		return hclog.Error
	default:
		return hclog.Info
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto es os.Stdout. En tests se pasa un buffer.
	Output io.Writer
}

// hcLogger adapta hclog a nuestra interfaz de campos como map.
type hcLogger struct {
	hc hclog.Logger
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	return &hcLogger{
		hc: hclog.New(&hclog.LoggerOptions{
			Name:       strings.TrimSpace(opts.App),
			Level:      opts.Level.hclog(),
			Output:     out,
			JSONFormat: format == FormatJSON,
		}),
	}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=pets-api (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// NewNop descarta todo. Útil en tests.
func NewNop() Logger {
	return &hcLogger{hc: hclog.NewNullLogger()}
}

func (l *hcLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &hcLogger{hc: l.hc.With(toArgs(fields)...)}
}

func (l *hcLogger) Debug(msg string, fields map[string]any) { l.hc.Debug(msg, toArgs(fields)...) }
func (l *hcLogger) Info(msg string, fields map[string]any)  { l.hc.Info(msg, toArgs(fields)...) }
func (l *hcLogger) Warn(msg string, fields map[string]any)  { l.hc.Warn(msg, toArgs(fields)...) }
func (l *hcLogger) Error(msg string, fields map[string]any) { l.hc.Error(msg, toArgs(fields)...) }

// toArgs convierte el map en pares key/value ordenados por key (salida estable).
func toArgs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		args = append(args, k, v)
	}
	return args
}
