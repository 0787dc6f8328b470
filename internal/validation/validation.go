package validation

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	ErrRequired      = errors.New("field is required")
	ErrInvalidName   = errors.New("name must contain only letters")
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNotPDF        = errors.New("file must be a pdf")
	ErrFileTooLarge  = errors.New("file exceeds maximum size")
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-ZğüşıöçĞÜŞİÖÇ\s]+$`)
	phoneRe = regexp.MustCompile(`^(\+90|0)?\s*5\d{2}\s*\d{3}\s*\d{2}\s*\d{2}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Name accepts Turkish personal names: letters and spaces, at least
// two characters after trimming.
func Name(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s: %w", field, ErrRequired)
	}
	if len([]rune(value)) < 2 || !nameRe.MatchString(value) {
		return fmt.Errorf("%s: %w", field, ErrInvalidName)
	}
	return nil
}

// Phone accepts Turkish mobile numbers with an optional +90 or 0
// prefix, spaces allowed between groups.
func Phone(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrRequired
	}
	if !phoneRe.MatchString(value) {
		return ErrInvalidPhone
	}
	return nil
}

func Email(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrRequired
	}
	if !emailRe.MatchString(value) {
		return ErrInvalidEmail
	}
	return nil
}

// Date parses an optional YYYY-MM-DD value. An empty string is valid
// and yields nil.
func Date(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// PDFFile checks the upload's extension and size. Content sniffing is
// left to the extraction backends, which reject non-PDF bytes anyway.
func PDFFile(header *multipart.FileHeader, maxSize int64) error {
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return ErrNotPDF
	}
	if header.Size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}
