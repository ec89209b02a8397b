package usecase

import "errors"

const (
	CodePrompt       = "PROMPT_FAILED"
	CodePersist      = "PERSIST_FAILED"
	CodeFollowUp     = "FOLLOW_UP_FAILED"
	CodeInvalidLead  = "INVALID_LEAD"
	CodeMarkerFailed = "MARKER_FAILED"
)

// DomainError reports input the workflow refuses. It is the caller's fault
// and is not retried.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var target *DomainError
	return errors.As(err, &target)
}

// InvalidLead wraps a lead validation failure.
func InvalidLead(err error) *DomainError {
	return &DomainError{Code: CodeInvalidLead, Message: err.Error()}
}

// TechnicalError reports an infrastructure failure (terminal, disk, broker)
// and keeps the underlying cause for errors.Is checks.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var target *TechnicalError
	return errors.As(err, &target)
}

func technical(code, message string, err error) error {
	return &TechnicalError{Code: code, Message: message, Err: err}
}
