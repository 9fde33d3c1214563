package shared

// DomainError is a business-rule violation with a stable machine code.
// Handlers map the code onto an HTTP status.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Errors shared across aggregates. Compared with errors.Is, so each must
// stay a singleton.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrRuleInUse           = NewDomainError("RULE_IN_USE", "Rule has awarded records and cannot be removed")
	ErrDuplicateAward      = NewDomainError("DUPLICATE_AWARD", "An award already exists for this period")
	ErrCapExhausted        = NewDomainError("CAP_EXHAUSTED", "The period cap leaves no room for this award")
)
