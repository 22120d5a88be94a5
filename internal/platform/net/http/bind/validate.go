// Package bind turns request input into typed structs and validates them
package bind

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	perr "reviewsense/internal/platform/errors"
	"reviewsense/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

// messages override the stock english text for the rules the query DTOs use
var messages = map[string]string{
	"required": "{0} is required",
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"notblank": "{0} must not be blank",
}

func setup() {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		valid = validator.New(validator.WithRequiredStructEnabled())
		valid.RegisterTagNameFunc(fieldName)
		_ = valid.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		_ = en_translations.RegisterDefaultTranslations(valid, trans)
		for tag, text := range messages {
			override(tag, text)
		}
	})
}

func override(tag, text string) {
	_ = valid.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// fieldName reports fields by their query tag so messages match what the client sent
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// Validate checks v against its validate tags, the first failure becomes a
// validation error carrying the offending field
func Validate(v any) error {
	setup()
	err := valid.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.Internalf("validation error")
	}
	var fes validator.ValidationErrors
	if errors.As(err, &fes) && len(fes) > 0 {
		fe := fes[0]
		return perr.WithField(perr.Validationf("%s", fe.Translate(trans)), fe.Field())
	}
	return perr.Validationf("%s", err.Error())
}
