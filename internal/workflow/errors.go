package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrInputInvalid matches any *InputError.
	ErrInputInvalid = errors.New("input invalid")
	// ErrCollaboratorFailure matches any *CollaboratorError.
	ErrCollaboratorFailure = errors.New("collaborator failure")
	// ErrStaleResponse is returned when a collaborator result arrived after
	// the state it was computed against had been invalidated. The result is
	// dropped and nothing is reported to the sink.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrStageBusy is returned when a stage is triggered while its previous
	// call is still outstanding. The trigger is a no-op.
	ErrStageBusy = errors.New("stage already in flight")
)

// InputError reports a missing or invalid input before a gated action.
type InputError struct {
	Field   Stage
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInputInvalid) succeed.
func (e *InputError) Is(target error) bool {
	return target == ErrInputInvalid
}

// CollaboratorError reports a failed extraction, resource or profile call.
type CollaboratorError struct {
	Stage Stage
	Cause error
}

func (e *CollaboratorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s failed", e.Stage)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrCollaboratorFailure) succeed.
func (e *CollaboratorError) Is(target error) bool {
	return target == ErrCollaboratorFailure
}
