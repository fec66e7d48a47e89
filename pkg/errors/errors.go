package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeVocabulary represents a difficulty/fitness token with no
	// entry in the source's vocabulary table
	ErrorTypeVocabulary ErrorType = "vocabulary"
	// ErrorTypeSchema represents a required canonical field missing or
	// unparseable after mapping
	ErrorTypeSchema ErrorType = "schema"
	// ErrorTypeParse represents a malformed numeric or duration string
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeIngest represents errors while reading raw record dumps
	ErrorTypeIngest ErrorType = "ingest"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// PipelineError represents a pipeline-specific error
type PipelineError struct {
	Type    ErrorType
	Source  string
	Field   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	msg := fmt.Sprintf("[%s]", e.Type)
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// New creates a new PipelineError
func New(errType ErrorType, source, field, message string, err error) *PipelineError {
	return &PipelineError{
		Type:    errType,
		Source:  source,
		Field:   field,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewUnmappedVocabulary creates an error for a token absent from a source's
// vocabulary table. This is loud on purpose: silently defaulting would
// corrupt the cross-source comparison downstream.
func NewUnmappedVocabulary(source, field, token string) *PipelineError {
	return New(ErrorTypeVocabulary, source, field, fmt.Sprintf("unmapped token %q", token), nil)
}

// NewSchemaValidation creates an error for a required canonical field that is
// missing after mapping
func NewSchemaValidation(source, field, message string) *PipelineError {
	return New(ErrorTypeSchema, source, field, message, nil)
}

// NewParse creates an error for a malformed numeric or duration string
func NewParse(source, field, message string, err error) *PipelineError {
	return New(ErrorTypeParse, source, field, message, err)
}

// NewIngest creates a new ingest error
func NewIngest(source, message string, err error) *PipelineError {
	return New(ErrorTypeIngest, source, "", message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(source, message string, err error) *PipelineError {
	return New(ErrorTypePublisher, source, "", message, err)
}

// NewCache creates a new cache error
func NewCache(source, message string, err error) *PipelineError {
	return New(ErrorTypeCache, source, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *PipelineError {
	return New(ErrorTypeConfiguration, "", "", message, err)
}

// IsType reports whether err is a PipelineError of the given type
func IsType(err error, errType ErrorType) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Type == errType
	}
	return false
}

// IsUnmappedVocabulary reports whether err is a vocabulary lookup failure
func IsUnmappedVocabulary(err error) bool {
	return IsType(err, ErrorTypeVocabulary)
}

// IsSchemaValidation reports whether err is a schema validation failure
func IsSchemaValidation(err error) bool {
	return IsType(err, ErrorTypeSchema)
}
