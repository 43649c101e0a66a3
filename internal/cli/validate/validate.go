// Package validate performs client-side form validation before any network
// call. Failures carry a field-to-message mapping so commands can report them
// next to the offending input; they are never surfaced as toasts.
package validate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names as their form names, not Go identifiers
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("form"); name != "" {
			return name
		}
		return field.Name
	})
	return v
}

type signInInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// SignIn validates sign-in credentials.
func SignIn(email, password string) error {
	return run(signInInput{Email: email, Password: password})
}

type signUpInput struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// SignUp validates sign-up form data.
func SignUp(name, email, password string) error {
	return run(signUpInput{Name: name, Email: email, Password: password})
}

// ProfileInput is the profile form. The password trio follows the product
// rule: new password and confirmation are required (min 6) only when the old
// password is supplied, and the confirmation must match the new password
// whenever one is given.
type ProfileInput struct {
	Name                 string `form:"name" validate:"required"`
	Email                string `form:"email" validate:"required,email"`
	OldPassword          string `form:"old_password"`
	Password             string `form:"password" validate:"required_with=OldPassword,omitempty,min=6"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required_with=OldPassword,omitempty,min=6,eqfield=Password"`
}

// Profile validates profile form data.
func Profile(in ProfileInput) error {
	return run(in)
}

type forgotPasswordInput struct {
	Email string `form:"email" validate:"required,email"`
}

// ForgotPassword validates the recovery form.
func ForgotPassword(email string) error {
	return run(forgotPasswordInput{Email: email})
}

func run(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "eqfield":
		return "confirmation does not match the new password"
	case "required_with":
		return "required when changing password"
	default:
		return "invalid value"
	}
}
