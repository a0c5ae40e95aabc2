package response

import "fmt"

// AppError what the client sees (Status, Message) plus the cause kept for logs
type AppError struct {
	Status  int
	Message string
	Cause   error
}

// Failure builds an AppError; cause may be nil
func Failure(status int, message string, cause error) *AppError {
	return &AppError{Status: status, Message: message, Cause: cause}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Internal 5xx
func (e *AppError) Internal() bool { return e.Status >= CodeInternal }
