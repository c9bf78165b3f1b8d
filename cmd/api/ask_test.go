package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/pdfchat/internal/chat/ingest/ingesttest"
	"github.com/akolanti/pdfchat/internal/chat/prompt"
)

func writePDF(t *testing.T, pages ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(path, ingesttest.BuildPDF(nil, pages...), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PDFCHAT_PROVIDERS_DEFAULT_KEY", "")
	t.Setenv("PDFCHAT_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAsk_DemoModeWithQuestions(t *testing.T) {
	path := writePDF(t, "Quarterly revenue grew by ten percent")

	out, err := runCLI(t, "ask", "--file", path, "-q", "What grew?", "-q", "By how much?")
	if err != nil {
		t.Fatalf("ask failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "notes.pdf: 1 pages") {
		t.Errorf("document header missing:\n%s", out)
	}
	if strings.Count(out, "Free AI Assistant") != 3 {
		t.Errorf("expected the demo reply for the analysis and both questions:\n%s", out)
	}
	if !strings.Contains(out, "❓ What grew?") || !strings.Contains(out, "❓ By how much?") {
		t.Errorf("questions not echoed:\n%s", out)
	}
}

func TestAsk_SuggestsQuestionsWhenNoneGiven(t *testing.T) {
	out, err := runCLI(t, "ask", "--file", writePDF(t, "Some text"))
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	for _, q := range prompt.SuggestedQuestions() {
		if !strings.Contains(out, q) {
			t.Errorf("suggested question %q missing", q)
		}
	}
}

func TestAsk_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Missing file flag", []string{"ask"}},
		{"File does not exist", []string{"ask", "--file", filepath.Join(t.TempDir(), "ghost.pdf")}},
		{"Image only PDF", []string{"ask", "--file", writePDF(t, "")}},
		{"Blank question", []string{"ask", "--file", writePDF(t, "text"), "-q", "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
