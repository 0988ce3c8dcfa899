package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSliceToSet(t *testing.T) {
	if got := sliceToSet(nil); got != nil {
		t.Fatalf("sliceToSet(nil) = %v, want nil", got)
	}
	if got := sliceToSet([]string{"", "  "}); got != nil {
		t.Fatalf("sliceToSet(blank) = %v, want nil", got)
	}
	got := sliceToSet([]string{"History", "text"})
	want := map[string]struct{}{"history": {}, "text": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sliceToSet mismatch (-want +got):\n%s", diff)
	}
}

func newTestHandler(t *testing.T, cfg Config) (*filteringHandler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg.process()
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return newFilteringHandler(base, &cfg), &buf
}

func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Now(), level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func TestFilteringHandlerTags(t *testing.T) {
	h, buf := newTestHandler(t, Config{LogLevel: "debug", DisabledTags: []string{"grouping"}})

	_ = h.Handle(context.Background(), record(slog.LevelDebug, "dropped", slog.String(tagKey, "Grouping")))
	if buf.Len() != 0 {
		t.Fatalf("disabled tag was logged: %q", buf.String())
	}
	_ = h.Handle(context.Background(), record(slog.LevelDebug, "kept", slog.String(tagKey, "render")))
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Fatalf("enabled tag was dropped: %q", buf.String())
	}
}

func TestFilteringHandlerEnabledTagsOnlyAffectDebug(t *testing.T) {
	h, buf := newTestHandler(t, Config{LogLevel: "debug", EnabledTags: []string{"history"}})

	_ = h.Handle(context.Background(), record(slog.LevelDebug, "untagged-debug"))
	if buf.Len() != 0 {
		t.Fatalf("untagged debug record passed an enabled-tags filter: %q", buf.String())
	}
	_ = h.Handle(context.Background(), record(slog.LevelWarn, "untagged-warn"))
	if !bytes.Contains(buf.Bytes(), []byte("untagged-warn")) {
		t.Fatalf("warning was dropped: %q", buf.String())
	}
}

func TestAllowedBy(t *testing.T) {
	enabled := sliceToSet([]string{"core"})
	disabled := sliceToSet([]string{"core", "tui"})
	if allowedBy(nil, disabled, "TUI") {
		t.Errorf("disabled key allowed")
	}
	if allowedBy(enabled, disabled, "core") {
		t.Errorf("disabled must win over enabled")
	}
	if !allowedBy(nil, nil, "anything") {
		t.Errorf("empty filters should allow everything")
	}
	if allowedBy(enabled, nil, "buffer") {
		t.Errorf("key outside enabled list allowed")
	}
}
