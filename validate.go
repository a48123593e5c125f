package animalform

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// namePattern accepts one or more ASCII letters or whitespace characters.
// The whitespace class follows ECMAScript's \s, which is wider than RE2's.
var namePattern = regexp.MustCompile(`^[A-Za-z\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+$`)

// animalSchema is the shape checked after the presence check passes.
type animalSchema struct {
	Name       string `json:"name" validate:"animalname"`
	PictureURL string `json:"pictureUrl" validate:"utf16max=200"`
}

var schema = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "animalname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "utf16max", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			panic(fmt.Sprintf("animalform: bad utf16max parameter %q", fl.Param()))
		}
		return utf16Len(fl.Field().String()) <= limit
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("animalform: register %s: %v", tag, err))
	}
}

// Validate runs the presence check and then the schema check against s.
//
// On success the returned Animal carries the values unchanged. On failure the
// error is an *EmptyFieldError or a *SchemaError.
func Validate(s FormState) (Animal, error) {
	var empty []Field
	for _, f := range Fields {
		if isBlank(s.Value(f)) {
			empty = append(empty, f)
		}
	}
	if len(empty) > 0 {
		return Animal{}, &EmptyFieldError{Fields: empty}
	}

	in := animalSchema{Name: s.Name, PictureURL: s.PictureURL}
	if err := schema.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return Animal{}, newSchemaError(verrs)
		}
		return Animal{}, fmt.Errorf("animalform: schema check: %w", err)
	}

	return Animal{Name: in.Name, PictureURL: in.PictureURL}, nil
}

func newSchemaError(verrs validator.ValidationErrors) *SchemaError {
	e := &SchemaError{Issues: make([]Issue, 0, len(verrs))}
	for _, fe := range verrs {
		e.Issues = append(e.Issues, Issue{
			Field:   Field(fe.Field()),
			Rule:    fe.Tag(),
			Message: issueMessage(fe),
		})
	}
	return e
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "animalname":
		return "Invalid name format"
	case "utf16max":
		return "Picture URL must contain at most " + fe.Param() + " characters"
	}
	return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
}

// isBlank reports whether s is empty once surrounding whitespace is removed.
func isBlank(s string) bool {
	return strings.TrimFunc(s, isTrimSpace) == ""
}

// isTrimSpace reports whether r is removed by the browser's String.trim:
// the WhiteSpace and LineTerminator sets. Unlike unicode.IsSpace it keeps
// U+0085 and includes U+FEFF.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// utf16Len counts UTF-16 code units, the unit browsers use for maxlength.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
