package animalform

import "fmt"

// Field identifies one of the form's inputs. The value doubles as the input's
// name attribute.
type Field string

const (
	FieldName       Field = "name"
	FieldPictureURL Field = "pictureUrl"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldPictureURL}

// Display limits applied to the rendered inputs. They are independent of the
// schema rules in validate.go.
const (
	NameMaxLength       = 30
	PictureURLMaxLength = 200
)

// Animal is a submission that passed both validation layers.
type Animal struct {
	Name       string
	PictureURL string
}

// CreateFunc receives a validated animal. It is called at most once per
// successful submission.
type CreateFunc func(name, pictureURL string)

// FormState holds the current contents of the form.
//
// Name and PictureURL always equal what the inputs display. Error carries the
// message from the last failed submission and is cleared by a successful one.
type FormState struct {
	Name       string `msgpack:"n,omitempty"`
	PictureURL string `msgpack:"u,omitempty"`
	Error      string `msgpack:"e,omitempty"`
}

// Set stores value in field exactly as given.
func (s *FormState) Set(field Field, value string) error {
	switch field {
	case FieldName:
		s.Name = value
	case FieldPictureURL:
		s.PictureURL = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return nil
}

// Value returns the stored value of field.
func (s FormState) Value(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldPictureURL:
		return s.PictureURL
	}
	return ""
}

// Reset returns the state to the empty initial form. It is idempotent.
func (s *FormState) Reset() {
	*s = FormState{}
}

// IsZero reports whether the form is in its initial state.
func (s FormState) IsZero() bool {
	return s == FormState{}
}
