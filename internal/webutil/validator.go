package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator is the validator instance shared by every handler.
var Validator *validator.Validate

// Trans renders validation errors as messages.
var Trans ut.Translator

// fieldDisplayNames maps JSON field names to the wording used in messages.
var fieldDisplayNames = map[string]string{
	"text":                 "text",
	"difficulty":           "difficulty",
	"audio_quality_score":  "audio quality score",
	"llm_accuracy_score":   "LLM accuracy score",
	"free_text_difficulty": "free text difficulty",
	"prompt_text":          "prompt text",
	"llm_response":         "LLM response",
	"prompts":              "prompts",
}

func displayName(field string) string {
	if name, ok := fieldDisplayNames[field]; ok {
		return name
	}
	return field
}

func init() {
	Validator = validator.New()

	// Report fields by their JSON names.
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation("required", "{0} is required.")

	// Scores and difficulties are numeric; slices use min/max as lengths.
	registerBoundTranslation("min", "{0} must be at least {1}.", "{0} must contain at least {1} item(s).")
	registerBoundTranslation("max", "{0} must be at most {1}.", "{0} must contain at most {1} item(s).")
}

func registerTranslation(tag, msg string) {
	Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, displayName(fe.Field()))
		return t
	})
}

func registerBoundTranslation(tag, numberMsg, lengthMsg string) {
	lengthKey := tag + "-len"
	Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		if err := ut.Add(tag, numberMsg, true); err != nil {
			return err
		}
		return ut.Add(lengthKey, lengthMsg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		key := tag
		switch fe.Kind() {
		case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
			key = lengthKey
		}
		t, _ := ut.T(key, displayName(fe.Field()), fe.Param())
		return t
	})
}
