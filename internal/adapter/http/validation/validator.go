package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// Field errors name the JSON key the client sent.
	Validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}
}

// FieldError is one rejected field with its translated message.
type FieldError struct {
	Field   string
	Message string
}

func FieldErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]FieldError, 0, len(validationErrors))

	for _, fieldError := range validationErrors {
		fields = append(fields, FieldError{
			Field:   fieldError.Field(),
			Message: fieldError.Translate(Translator),
		})
	}

	return fields
}

// FormatValidationErrors joins the translated messages of a validator error
// into one line. Other errors are returned as their text.
func FormatValidationErrors(err error) string {
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}

	messages := make([]string, len(fields))
	for i, field := range fields {
		messages[i] = field.Message
	}

	return strings.Join(messages, "; ")
}
