package validate

import (
	"errors"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("ID is not in its proper form")

var validate *validator.Validate

var translator ut.Translator

func init() {

	validate = validator.New()

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterValidation("alphaspace", alphaSpace)
	validate.RegisterTranslation("alphaspace", translator,
		func(ut ut.Translator) error {
			return ut.Add("alphaspace", "{0} can only contain letters and spaces", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("alphaspace", fe.Field())
			return t
		},
	)
}

func alphaSpace(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func Check(val any) error {
	if err := validate.Struct(val); err != nil {

		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		if len(verrors) < 1 {
			return nil
		}

		return errors.New(verrors[0].Translate(translator))
	}

	return nil
}

func GenerateID() string {
	return uuid.NewString()
}

func CheckID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
