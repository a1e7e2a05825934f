package ai

import "fmt"

// GenerationError covers transport failures, endpoint errors and empty
// model responses. Callers treat it as terminal for the attempt.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseError means no JSON object could be extracted from the raw model
// output, or the extracted substring is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError means the JSON parsed but does not conform to the
// expected schema (missing or mistyped required fields).
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid response: %s", e.Field)
}

func (e *ValidationError) Unwrap() error { return e.Err }
