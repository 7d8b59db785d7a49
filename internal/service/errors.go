package service

import "fmt"

// здесь происходит проверка ошибок бизнес-логики

const CodeNotFound = "NOT_FOUND"
const CodeValidation = "VALIDATION_ERROR"
const CodeUnauthorized = "UNAUTHORIZED"
const CodeConflict = "CONFLICT"

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewNotFound(resource, id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %q не найден(а)", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

// NewUnauthorized намеренно не уточняет, что именно не совпало
func NewUnauthorized() *BusinessError {
	return &BusinessError{
		Code:    CodeUnauthorized,
		Message: "Проверьте учётные данные",
	}
}

func NewConflict(reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeConflict,
		Message: reason,
	}
}
