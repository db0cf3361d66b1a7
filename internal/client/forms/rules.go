package forms

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	loginPattern       = regexp.MustCompile(`^[A-Za-z0-9._-]{7,256}$`)
	displayNamePattern = regexp.MustCompile(`^[\w+|\s]{5,64}$`)
	// confirmPattern is deliberately unanchored: any run of 8 characters
	// inside the password satisfies it.
	confirmPattern = regexp.MustCompile(`[\w+|\W]{8,127}`)
)

// ConfirmValid reports whether a confirmation c is valid for password p:
// p must match the broad password pattern and both values must be equal.
func ConfirmValid(p, c string) bool {
	return confirmPattern.MatchString(p) && p == c
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "login", func(fl validator.FieldLevel) bool {
		return loginPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "displayname", func(fl validator.FieldLevel) bool {
		return displayNamePattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

type addFields struct {
	Login           string `json:"login" validate:"required,login"`
	DisplayName     string `json:"display_name" validate:"required,max=64,displayname"`
	Description     string `json:"description" validate:"max=1024"`
	Password        string `json:"password" validate:"required,min=8,max=127"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type editFields struct {
	Login       string `json:"login" validate:"required,login"`
	DisplayName string `json:"display_name" validate:"required,max=64,displayname"`
	Description string `json:"description" validate:"max=1024"`
}

type passwordFields struct {
	Password        string `json:"password" validate:"required,min=8,max=127"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// check runs the struct rules and collects the first failing tag per field.
func check(s any) map[string]string {
	out := map[string]string{}
	err := validate.Struct(s)
	if err == nil {
		return out
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out[""] = err.Error()
		return out
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
