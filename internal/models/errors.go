package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced to callers
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation_error"
	KindNoSentencesDetected ErrorKind = "no_sentences_detected"
	KindMalformedCatalog    ErrorKind = "malformed_catalog"
)

// Sentinels for errors.Is
var (
	ErrNoSentencesDetected = errors.New("no sentences detected")
	ErrMalformedCatalog    = errors.New("malformed pattern catalog")
)

// Error is a processing failure raised by the analysis core
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on the kind sentinels
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindNoSentencesDetected:
		return target == ErrNoSentencesDetected
	case KindMalformedCatalog:
		return target == ErrMalformedCatalog
	}
	return false
}

// NoSentencesError reports text that passed validation but has no analyzable sentence
func NoSentencesError(op string) error {
	return &Error{
		Kind:    KindNoSentencesDetected,
		Op:      op,
		Message: "text contains no analyzable sentences",
	}
}

// MalformedCatalogError reports a broken built-in pattern definition
func MalformedCatalogError(op string, err error) error {
	return &Error{
		Kind:    KindMalformedCatalog,
		Op:      op,
		Message: "invalid built-in pattern definition",
		Err:     err,
	}
}

// ErrorResponse is the JSON shape for classified failures
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Kind    string `json:"kind,omitempty"`
}

// ProcessingErrorResponse converts a core error to its response shape
func ProcessingErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{
		Error:   "Processing error",
		Message: err.Error(),
		Type:    "processing_error",
	}
	var e *Error
	if errors.As(err, &e) {
		resp.Kind = string(e.Kind)
		resp.Message = e.Message
	}
	return resp
}
