package domain

import (
	"errors"
	"testing"
)

func validRequest() UploadRequest {
	return UploadRequest{
		Filename:  "circular.pdf",
		Size:      1 << 20,
		Language:  LanguageGujarati,
		Direction: DirectionToTarget,
		Mode:      ModeGeneral,
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsNonPDF(t *testing.T) {
	req := validRequest()
	req.Filename = "notes.docx"

	err := req.Validate()
	if !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
}

func TestValidate_RejectsOversize(t *testing.T) {
	req := validRequest()
	req.Size = 30 << 20 // 30 MB

	err := req.Validate()
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*UploadRequest)
	}{
		{"empty filename", func(r *UploadRequest) { r.Filename = "" }},
		{"unknown language", func(r *UploadRequest) { r.Language = "xx" }},
		{"empty language", func(r *UploadRequest) { r.Language = "" }},
		{"bad direction", func(r *UploadRequest) { r.Direction = "sideways" }},
		{"bad mode", func(r *UploadRequest) { r.Mode = "casual" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			c.mutate(&req)
			if err := req.Validate(); !errors.Is(err, ErrMissingField) {
				t.Errorf("expected ErrMissingField, got %v", err)
			}
		})
	}
}

func TestValidate_CeilingIsInclusive(t *testing.T) {
	req := validRequest()
	req.Size = MaxUploadBytes
	if err := req.Validate(); err != nil {
		t.Fatalf("exactly 25 MB should pass, got %v", err)
	}
}

func TestSniffPDF(t *testing.T) {
	if err := SniffPDF([]byte("%PDF-1.7\n")); err != nil {
		t.Errorf("valid magic rejected: %v", err)
	}
	if err := SniffPDF(nil); err != nil {
		t.Errorf("empty head should be inconclusive, got %v", err)
	}
	if err := SniffPDF([]byte("PK\x03\x04")); !errors.Is(err, ErrInvalidFileType) {
		t.Errorf("expected ErrInvalidFileType for zip magic, got %v", err)
	}
}
