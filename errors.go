package animalform

import (
	"errors"
	"strings"
)

// Sentinel errors for form and transport failures.
var (
	// ErrEmptyField is matched by every *EmptyFieldError.
	ErrEmptyField = errors.New("animalform: name and picture URL are required")
	// ErrSchema is matched by every *SchemaError.
	ErrSchema = errors.New("animalform: input failed schema validation")

	ErrUnknownField     = errors.New("animalform: unknown form field")
	ErrNotFound         = errors.New("animalform: resource not found")
	ErrMethodNotAllowed = errors.New("animalform: method not allowed")
	ErrNotRegistered    = errors.New("animalform: component is not registered")
	ErrDecryptFailed    = errors.New("animalform: state decryption failed")
	ErrSignatureInvalid = errors.New("animalform: state signature verification failed")
	ErrInvalidFormat    = errors.New("animalform: invalid state format")
)

// EmptyFieldError reports the fields that were blank after trimming when a
// submission was attempted.
type EmptyFieldError struct {
	Fields []Field
}

func (e *EmptyFieldError) Error() string {
	return ErrEmptyField.Error()
}

func (e *EmptyFieldError) Is(target error) bool {
	return target == ErrEmptyField
}

// Issue is a single failed schema rule.
type Issue struct {
	Field   Field
	Rule    string
	Message string
}

// SchemaError reports every rule the submitted values broke.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, string(is.Field)+": "+is.Message)
	}
	return "animalform: invalid input: " + strings.Join(parts, "; ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// IsEmptyField reports whether err is a presence-check failure.
func IsEmptyField(err error) bool {
	return errors.Is(err, ErrEmptyField)
}

// IsSchemaError reports whether err is a schema-check failure.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsValidationError reports whether err came from either validation layer.
func IsValidationError(err error) bool {
	return IsEmptyField(err) || IsSchemaError(err)
}

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsBadRequest reports whether err was caused by a malformed request.
func IsBadRequest(err error) bool {
	return IsDecryptionError(err) || errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrUnknownField)
}

// FailureMessage returns the text shown to the user for a failed submission.
func FailureMessage(err error) string {
	var schemaErr *SchemaError
	switch {
	case err == nil:
		return ""
	case IsEmptyField(err):
		return "Name and Picture URL are required"
	case errors.As(err, &schemaErr):
		msgs := make([]string, 0, len(schemaErr.Issues))
		for _, is := range schemaErr.Issues {
			msgs = append(msgs, is.Message)
		}
		return strings.Join(msgs, ". ")
	default:
		return "Failed to validate input data"
	}
}
