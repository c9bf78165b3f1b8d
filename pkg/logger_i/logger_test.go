package logger_i

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/akolanti/pdfchat/internal/config"
)

func TestLogger_JSONCarriesComponentAndTrace(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, true, "debug")

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-1")
	NewLogger("ingest").WithTrace(ctx).Info("extracted", "pages", 3)

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	if line["component"] != "ingest" {
		t.Errorf("component got %v", line["component"])
	}
	if line[config.TRACE_ID_KEY] != "trace-1" {
		t.Errorf("trace got %v", line[config.TRACE_ID_KEY])
	}
	if line["msg"] != "extracted" {
		t.Errorf("msg got %v", line["msg"])
	}
	src, ok := line["source"].(map[string]any)
	if !ok || !strings.HasSuffix(src["file"].(string), "logger_test.go") {
		t.Errorf("source should point at the caller, got %v", line["source"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false, "warn")

	l := NewLogger("test")
	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn should be logged: %s", out)
	}
}

func TestParseLevel_Defaults(t *testing.T) {
	if got := parseLevel(true, ""); got != config.LOG_LEVEL_PROD {
		t.Errorf("prod default got %v", got)
	}
	if got := parseLevel(false, ""); got != slog.LevelDebug {
		t.Errorf("dev default got %v", got)
	}
	if got := parseLevel(false, "ERROR"); got != slog.LevelError {
		t.Errorf("explicit level got %v", got)
	}
}

func TestLogger_CreatedBeforeInit(t *testing.T) {
	var before bytes.Buffer
	InitWriter(&before, false, "error")
	early := NewLogger("Document Ingestion")
	tagged := early.With("sessionId", "s-1")

	var buf bytes.Buffer
	InitWriter(&buf, true, "debug")

	early.Debug("debug line")
	tagged.Error("error line", "k", "v")

	if before.Len() != 0 {
		t.Errorf("nothing should reach the replaced handler: %s", before.String())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 json lines, got %d: %s", len(lines), buf.String())
	}

	tests := []struct {
		line  string
		level string
		msg   string
		attrs map[string]string
	}{
		{lines[0], "DEBUG", "debug line", map[string]string{"component": "Document Ingestion"}},
		{lines[1], "ERROR", "error line", map[string]string{"component": "Document Ingestion", "sessionId": "s-1", "k": "v"}},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			var got map[string]any
			if err := json.Unmarshal([]byte(tt.line), &got); err != nil {
				t.Fatalf("log line is not json: %v (%s)", err, tt.line)
			}
			if got["level"] != tt.level || got["msg"] != tt.msg {
				t.Errorf("got level %v msg %v, want %s %s", got["level"], got["msg"], tt.level, tt.msg)
			}
			for k, v := range tt.attrs {
				if got[k] != v {
					t.Errorf("attr %s got %v, want %s", k, got[k], v)
				}
			}
		})
	}
}
