// Package parsing turns LLM output into normalized skill analyses.
package parsing

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResume       = errors.New("resume text is empty")
	ErrNoJobDescriptions = errors.New("no job descriptions to compare against")
)

// GenerationError wraps a failed model call.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("skill analysis generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// ResponseError reports model output that holds neither JSON nor skill
// sections. Excerpt is the start of the response.
type ResponseError struct {
	Excerpt string
	Cause   error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unreadable skill analysis response %q", e.Excerpt)
}

func (e *ResponseError) Unwrap() error { return e.Cause }

func excerpt(s string) string {
	const n = 80
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
