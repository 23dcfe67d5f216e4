package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/postkeeper/core/internal/domain/entities"
)

// CreatePostRequest holds the mandatory fields of a create payload.
// Fields that are absent or not JSON strings are left empty.
type CreatePostRequest struct {
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// NewCreatePostRequest extracts the mandatory fields from a payload
func NewCreatePostRequest(payload entities.Fields) CreatePostRequest {
	name, _ := payload.String("name")
	surname, _ := payload.String("surname")
	email, _ := payload.String("email")
	return CreatePostRequest{Name: name, Surname: surname, Email: email}
}

// violationMessages maps field and failed tag to the message shown to clients
var violationMessages = map[string]map[string]string{
	"name":    {"required": "Name is a mandatory field!"},
	"surname": {"required": "Surname is a mandatory field!"},
	"email": {
		"required": "Email is a mandatory field!",
		"email":    "Please send a valid email!",
	},
}

// PostValidator checks request payloads. It satisfies echo.Validator.
type PostValidator struct {
	validate *validator.Validate
}

// NewPostValidator creates a validator that reports JSON field names
func NewPostValidator() *PostValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &PostValidator{validate: v}
}

// Validate checks i and returns *entities.ValidationError listing every
// violated field in declaration order.
func (pv *PostValidator) Validate(i interface{}) error {
	err := pv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	violations := make([]entities.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, entities.Violation{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return &entities.ValidationError{Violations: violations}
}

func messageFor(fe validator.FieldError) string {
	if byTag, ok := violationMessages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	return fe.Field() + " failed the " + fe.Tag() + " check"
}
