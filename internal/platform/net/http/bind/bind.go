// Package bind validates the request inputs handlers assemble from query strings, path params
// and multipart fields, translating the first failure into a validation error
package bind

import (
	"reflect"
	"strings"
	"sync"

	perr "unirank/internal/platform/errors"
	"unirank/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Ranking years accepted by the year tag
const (
	MinYear = 1900
	MaxYear = 2100
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// Validator holds the validator and its english translator
type Validator struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Validator
)

// Get returns the process validator, building it on first use
func Get() *Validator {
	once.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(inputName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		short(v, trans, "min", "{0} must be at least {1}")
		short(v, trans, "max", "{0} must be at most {1}")
		short(v, trans, "oneof", "{0} must be one of [{1}]")

		_ = v.RegisterValidation("year", func(fl FieldLevel) bool {
			y := fl.Field().Int()
			return y >= MinYear && y <= MaxYear
		})
		short(v, trans, "year", "{0} must be a year between 1900 and 2100")

		svc = &Validator{Validate: v, Translator: trans}
	})
	return svc
}

// inputName names a field after its param tag, then its json tag, then the Go name
func inputName(fld reflect.StructField) string {
	for _, key := range []string{"param", "json"} {
		tag := fld.Tag.Get(key)
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return fld.Name
}

// Struct validates v and maps the first failure to a validation error carrying the field
func Struct(v any) error {
	err := Get().Validate.Struct(v)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Newf(perr.ErrorCodeValidation, "validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
