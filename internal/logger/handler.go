package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler and drops records whose
// package, file or tag is excluded by the Config.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{baseHandler: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// allowedBy applies one enabled/disabled pair. A disabled entry always wins.
func allowedBy(enabled, disabled map[string]struct{}, key string) bool {
	key = strings.ToLower(key)
	if _, found := disabled[key]; found {
		return false
	}
	if enabled == nil {
		return true
	}
	_, found := enabled[key]
	return found
}

// recordSource resolves the package directory and file base name of a record.
func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			found = true
			return false
		}
		return true
	})
	return tag, found
}

// reject returns a non-empty reason when the record must be dropped.
func (h *filteringHandler) reject(r slog.Record) string {
	pkg, file := recordSource(r)
	if pkg != "" && !allowedBy(h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet, pkg) {
		return "package " + pkg
	}
	if file != "" && !allowedBy(h.cfg.enabledFilesSet, h.cfg.disabledFilesSet, file) {
		return "file " + file
	}
	tag, hasTag := recordTag(r)
	switch {
	case hasTag && !allowedBy(h.cfg.enabledTagsSet, h.cfg.disabledTagsSet, tag):
		return "tag " + tag
	case !hasTag && h.cfg.enabledTagsSet != nil:
		// Only tagged debug records are subject to the tag allow-list.
		if r.Level <= slog.LevelDebug {
			return "untagged debug record"
		}
	}
	return ""
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}
	if reason := h.reject(r); reason != "" {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[FILTER] dropped %q: %s\n", r.Message, reason)
		}
		return nil
	}
	return h.baseHandler.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
