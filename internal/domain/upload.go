package domain

import (
	"bytes"
	"fmt"
	"strings"
)

// MaxUploadBytes is the upload ceiling enforced before any transfer.
const MaxUploadBytes = 25 << 20 // 25 MB

// Language is a supported document language code.
type Language string

// Supported language codes.
const (
	LanguageGujarati Language = "gu"
	LanguageHindi    Language = "hi"
	LanguageMarathi  Language = "mr"
)

// Direction selects which way the document is translated.
type Direction string

// Translation directions.
const (
	DirectionToTarget Direction = "to_target"
	DirectionToSource Direction = "to_source"
)

// Mode selects the translation register.
type Mode string

// Translation modes.
const (
	ModeGeneral Mode = "general"
	ModeFormal  Mode = "formal"
)

var supportedLanguages = map[Language]struct{}{
	LanguageGujarati: {},
	LanguageHindi:    {},
	LanguageMarathi:  {},
}

// pdfMagic is the signature at the start of every PDF document.
var pdfMagic = []byte("%PDF-")

// UploadRequest carries the document metadata and processing parameters
// for a submission. The file content travels separately as a stream.
type UploadRequest struct {
	Filename  string
	Size      int64
	Language  Language
	Direction Direction
	Mode      Mode
}

// Validate checks the request locally. It never touches the network and
// fails with a sentinel the caller can match with errors.Is.
func (r UploadRequest) Validate() error {
	if r.Filename == "" {
		return fmt.Errorf("filename is required: %w", ErrMissingField)
	}
	if !strings.HasSuffix(strings.ToLower(r.Filename), ".pdf") {
		return fmt.Errorf("%q is not a PDF document: %w", r.Filename, ErrInvalidFileType)
	}
	if r.Size > MaxUploadBytes {
		return fmt.Errorf("document is %d bytes, ceiling is %d: %w", r.Size, int64(MaxUploadBytes), ErrFileTooLarge)
	}
	if _, ok := supportedLanguages[r.Language]; !ok {
		return fmt.Errorf("unsupported language %q: %w", r.Language, ErrMissingField)
	}
	if r.Direction != DirectionToTarget && r.Direction != DirectionToSource {
		return fmt.Errorf("invalid direction %q: %w", r.Direction, ErrMissingField)
	}
	if r.Mode != ModeGeneral && r.Mode != ModeFormal {
		return fmt.Errorf("invalid mode %q: %w", r.Mode, ErrMissingField)
	}
	return nil
}

// SniffPDF checks the leading bytes of a document for the PDF signature.
// An empty head is inconclusive and passes; the extension check in
// Validate remains the primary gate.
func SniffPDF(head []byte) error {
	if len(head) == 0 {
		return nil
	}
	if len(head) < len(pdfMagic) || !bytes.HasPrefix(head, pdfMagic) {
		return fmt.Errorf("document does not start with %%PDF: %w", ErrInvalidFileType)
	}
	return nil
}
