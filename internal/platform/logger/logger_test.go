package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "profanity/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   "trace",
		"DEBUG":   "debug",
		"info":    "info",
		"warning": "warn",
		"error":   "error",
		"fatal":   "fatal",
		"panic":   "panic",
		" nope ":  "debug",
		"":        "debug",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInit_NamedAndRequestScoped(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "profanity-api",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Named("events").Info().Msg("named-msg")
	C(WithRequest(context.Background(), "req-123")).Info().Msg("ctx-msg")
	C(context.Background()).Info().Msg("bare-msg")

	out := buf.String()
	kit.MustContain(t, out, `"component":"events"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"service":"profanity-api"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, "bare-msg")
	if strings.Count(out, "request_id") != 1 {
		t.Fatalf("request_id should only appear on the scoped line:\n%s", out)
	}
	if Named("") != Get() {
		t.Fatalf("Named(\"\") should be the root logger")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "profanity")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "profanity" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample = %+v", opt)
	}
}
