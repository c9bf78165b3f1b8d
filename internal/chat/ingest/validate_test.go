package ingest

import (
	"errors"
	"testing"

	"github.com/akolanti/pdfchat/internal/chat/ingest/ingesttest"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
)

func TestValidateUpload(t *testing.T) {
	pdfBytes := ingesttest.BuildPDF(nil, "Hello")
	const limit = 1 << 20

	tests := []struct {
		name        string
		contentType string
		data        []byte
		max         int64
		wantReason  string
	}{
		{"valid", "application/pdf", pdfBytes, limit, ""},
		{"valid with params", "application/pdf; name=x.pdf", pdfBytes, limit, ""},
		{"wrong declared type", "text/plain", pdfBytes, limit, ReasonWrongType},
		{"missing declared type", "", pdfBytes, limit, ReasonWrongType},
		{"declared pdf but not a pdf", "application/pdf", []byte("hello world"), limit, ReasonWrongType},
		{"too large", "application/pdf", pdfBytes, int64(len(pdfBytes) - 1), sizeReason(int64(len(pdfBytes) - 1))},
		{"exactly at the limit", "application/pdf", pdfBytes, int64(len(pdfBytes)), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.contentType, tt.data, tt.max)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var validationErr *chatModel.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Reason != tt.wantReason {
				t.Errorf("reason got %q, want %q", validationErr.Reason, tt.wantReason)
			}
		})
	}
}

func TestSizeReason(t *testing.T) {
	if got := sizeReason(10 << 20); got != "File size must be less than 10MB" {
		t.Errorf("got %q", got)
	}
}

func TestIsTooLarge(t *testing.T) {
	err := ValidateUpload("application/pdf", ingesttest.BuildPDF(nil, "Hello"), 10)
	if !IsTooLarge(err, 10) {
		t.Errorf("expected size rejection, got %v", err)
	}
	if IsTooLarge(&chatModel.ValidationError{Reason: ReasonWrongType}, 10) {
		t.Error("wrong type is not a size rejection")
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		text  string
		valid bool
	}{
		{"Hello", true},
		{"--- Page 1 --- Hello", true},
		{"", false},
		{"   ", false},
		{"--- Page 1 --- --- Page 2 ---", false},
	}
	for _, tt := range tests {
		err := ValidateText(tt.text)
		if (err == nil) != tt.valid {
			t.Errorf("ValidateText(%q) err = %v, valid want %v", tt.text, err, tt.valid)
		}
	}
}
