// Package logging configures the global logrus logger. Import it with the
// blank identifier from main so the level, format and hooks are in place
// before anything logs.
package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

const redacted = "[redacted]"

// secretFields never reach the output. Bolt11 strings and addresses are
// public; credentials and preimages are not.
var secretFields = []string{"macaroon", "password", "rpc_password", "preimage", "payment_preimage"}

func init() {
	log.AddHook(&contextHook{})
	log.AddHook(&redactHook{fields: secretFields})

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}

	if err := Configure(logLevel, os.Getenv("LOG_FORMAT")); err != nil {
		log.Fatal(err)
	}
}

// Configure sets the level and output format of the global logger. Debug
// level also reports the caller.
func Configure(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	log.SetLevel(lvl)
	log.SetFormatter(formatter(format))
	log.SetReportCaller(lvl >= log.DebugLevel)

	return nil
}

func formatter(format string) log.Formatter {
	if format == "json" {
		return &log.JSONFormatter{}
	}

	return &log.TextFormatter{FullTimestamp: true}
}

// contextHook copies the trace and span ids of the entry's context, if any.
type contextHook struct{}

func (hook *contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook *contextHook) Fire(entry *log.Entry) error {
	if entry.Context == nil {
		return nil
	}

	span := trace.SpanFromContext(entry.Context).SpanContext()
	if span.IsValid() {
		entry.Data["trace_id"] = span.TraceID().String()
		entry.Data["span_id"] = span.SpanID().String()
	}

	return nil
}

type redactHook struct {
	fields []string
}

func (h *redactHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *redactHook) Fire(entry *log.Entry) error {
	for _, f := range h.fields {
		if _, ok := entry.Data[f]; ok {
			entry.Data[f] = redacted
		}
	}

	return nil
}
