package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// BusinessRuleError covers domain rejections such as insufficient balance,
// transactions against non-active accounts and invalid status transitions.
type BusinessRuleError struct {
	ErrorMessage
}

type UnauthorizedError struct {
	ErrorMessage
}

type ForbiddenError struct {
	ErrorMessage
}

type DatabaseError struct {
	ErrorMessage
	Operation string
}

type EncryptionError struct {
	ErrorMessage
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewBusinessRuleError(message string) *BusinessRuleError {
	return &BusinessRuleError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewDatabaseError(operation, message string) *DatabaseError {
	return &DatabaseError{ErrorMessage: ErrorMessage{Message: message}, Operation: operation}
}

func NewEncryptionError(message string) *EncryptionError {
	return &EncryptionError{ErrorMessage: ErrorMessage{Message: message}}
}
