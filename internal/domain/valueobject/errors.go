package valueobject

import "fmt"

// Machine-readable reason codes surfaced to clients on rejection.
const (
	CodeAmountNotPositive = "amount_not_positive"
	CodeTermOutOfRange    = "term_out_of_range"
	CodeRatioOutOfRange   = "ratio_out_of_range"
	CodeScoreOutOfRange   = "credit_score_out_of_range"
	CodeNegativeValue     = "negative_value"
	CodeMissingField      = "missing_field"
)

// ValidationError reports a malformed or out-of-range request field. It is
// raised before any scoring occurs and maps to the client error class.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError constructs a ValidationError for a single request field.
func NewValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

// PolicyEvaluationError reports an internal inconsistency in the policy
// tables, e.g. a score that matches no APR tier. Given a validated parameter
// set this is unreachable; if it surfaces it is a defect, not a recoverable
// condition.
type PolicyEvaluationError struct {
	Op      string
	Message string
}

func (e *PolicyEvaluationError) Error() string {
	return fmt.Sprintf("policy evaluation: %s: %s", e.Op, e.Message)
}

// NewPolicyEvaluationError constructs a PolicyEvaluationError.
func NewPolicyEvaluationError(op, message string) *PolicyEvaluationError {
	return &PolicyEvaluationError{Op: op, Message: message}
}
