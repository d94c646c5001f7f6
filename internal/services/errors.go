// Package services implements the collaborator stages served over HTTP:
// skill extraction, learning resources and profile search.
package services

import "fmt"

// InputError reports a request that cannot be served as given.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// UpstreamError reports a failing dependency (LLM or search API).
type UpstreamError struct {
	Op    string
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

func invalid(message string, cause error) error {
	return &InputError{Message: message, Cause: cause}
}
