package apperr

import "fmt"

// Tagged error variants propagated from the service layer to the single
// translation point in pkg/response. Messages align with the legacy service
// for client compatibility.

// ValidationError carries one message per failed field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func Validation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// BusinessError marks a business-rule violation (duplicate email).
type BusinessError struct {
	Msg string
}

func (e *BusinessError) Error() string { return e.Msg }

func DuplicateEmail(email string) *BusinessError {
	return &BusinessError{Msg: fmt.Sprintf("User with email %s already exists", email)}
}

// NotFoundError marks a lookup for an identifier that was never issued or
// has been deleted.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func UserNotFound(id int64) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf("User not found with id: %d", id)}
}

// StorageError wraps an opaque repository failure. The raw message is
// forwarded to the client unchanged (legacy behavior, kept as-is).
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(err error) *StorageError { return &StorageError{Err: err} }
