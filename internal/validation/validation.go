package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserInput is the wire-level create/update payload. Age is a pointer so an
// absent field is distinguishable from 0.
type UserInput struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"notblank,email"`
	Age   *int   `json:"age" validate:"required,gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 字段名取 json tag，保证错误映射里是 name/email/age
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// CheckUser evaluates every rule and returns one message per failed field,
// or nil when the input is valid. Rules never short-circuit across fields so
// a single bad request reports all of its field errors together.
func CheckUser(in UserInput) map[string]string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		return "Name is required"
	case "email":
		if fe.Tag() == "email" {
			return "Email should be valid"
		}
		return "Email is required"
	case "age":
		if fe.Tag() == "gte" {
			return "Age must be greater than or equal to 0"
		}
		return "Age is required"
	}
	return "Invalid value"
}
