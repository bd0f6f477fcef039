package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StoreDraft is the trimmed, pre-validation shape of a store write.
type StoreDraft struct {
	Name        string    `field:"name" validate:"required,slugsafe"`
	Description string    `field:"description" validate:"required"`
	Tags        []string  `field:"tags"`
	Address     string    `field:"location.address" validate:"required"`
	Coordinates []float64 `field:"location.coordinates" validate:"len=2"`
	Photo       string    `field:"photo"`
	AuthorID    string    `field:"author" validate:"required"`
}

// ReviewDraft is the pre-validation shape of a review write.
type ReviewDraft struct {
	Rating int    `field:"rating" validate:"min=1,max=5"`
	Text   string `field:"text" validate:"required"`
}

// PrincipalDraft is the JWT-derived identity upserted into the user record.
type PrincipalDraft struct {
	ID    string `field:"id" validate:"required"`
	Email string `field:"email" validate:"required,email"`
	Name  string `field:"user.name" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		return strings.ToLower(fld.Name)
	})
	// A name with no letters or digits would slugify to the empty string and
	// produce an unreachable listing, so it is rejected up front.
	_ = v.RegisterValidation("slugsafe", func(fl validator.FieldLevel) bool {
		return Slugify(fl.Field().String()) != ""
	})
	return v
}

var fieldMessages = map[string]string{
	"name":                 "please enter a store name",
	"description":          "please include a description",
	"location.address":     "you must supply an address",
	"location.coordinates": "you must supply coordinates (longitude, latitude)",
	"author":               "a store must have an author",
	"rating":               "rating must be between 1 and 5",
	"text":                 "please include a review",
	"email":                "invalid email address",
	"user.name":            "please supply a name",
	"id":                   "missing principal id",
}

// tagMessages overrides fieldMessages where one field carries more than one
// rule, keyed by "<field>.<tag>".
var tagMessages = map[string]string{
	"name.slugsafe": "a store name needs at least one letter or number",
}

// Validate checks a draft and reports every violated field at once.
func Validate(draft any) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return &UpstreamError{Op: "validate", Err: err}
	}

	fields := make([]FieldError, 0, len(violations))
	for _, violation := range violations {
		msg, ok := tagMessages[violation.Field()+"."+violation.Tag()]
		if !ok {
			msg, ok = fieldMessages[violation.Field()]
		}
		if !ok {
			msg = "invalid value"
		}
		fields = append(fields, FieldError{Field: violation.Field(), Message: msg})
	}
	return &ValidationError{Fields: fields}
}
