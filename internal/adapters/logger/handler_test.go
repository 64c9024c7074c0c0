package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"go.trai.ch/qsnap/internal/adapters/logger"
)

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		build      func(h slog.Handler) slog.Handler
		goldenName string
	}{
		{
			name:       "attrs",
			build:      func(h slog.Handler) slog.Handler { return h.WithAttrs([]slog.Attr{slog.String("doc", "a.md"), slog.Int("refs", 2)}) },
			goldenName: "handler_attrs",
		},
		{
			name:       "group",
			build:      func(h slog.Handler) slog.Handler { return h.WithGroup("span").WithAttrs([]slog.Attr{slog.String("name", "reference")}) },
			goldenName: "handler_group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			h := tt.build(logger.NewPrettyHandler(buf, nil))
			slog.New(h).Info("processed")

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}
