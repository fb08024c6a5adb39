package entity

import "errors"

// Domain errors
var (
	// Validation errors: reported to the user, no remote call is made
	ErrNoFileSelected    = errors.New("no file selected")
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrInvalidExtension  = errors.New("invalid file extension")
	ErrFileTooLarge      = errors.New("file too large")
	ErrMissingField      = errors.New("required field is missing")
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// Precondition errors: the operation is not allowed in the current state
	ErrBusy           = errors.New("another operation is in progress")
	ErrAlreadyIndexed = errors.New("document is already indexed")
	ErrNotIndexed     = errors.New("no document has been indexed yet")
	ErrNoAnswer       = errors.New("there is no answer to export")

	// ErrTransport wraps every failure of a call to the RAG service:
	// network errors, timeouts and non-2xx responses alike.
	ErrTransport = errors.New("rag service request failed")
)

var validationErrors = []error{
	ErrNoFileSelected,
	ErrEmptyQuestion,
	ErrInvalidExtension,
	ErrFileTooLarge,
	ErrMissingField,
	ErrUnsupportedFormat,
}

// IsValidation reports whether err belongs to the validation group
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsPrecondition reports whether err was caused by calling an operation
// in a state that does not allow it
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrAlreadyIndexed) ||
		errors.Is(err, ErrNotIndexed) ||
		errors.Is(err, ErrNoAnswer)
}
