package usecase

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type signUpInput struct {
	DisplayName     string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

// validationMessage maps the first failing field to its fixed local
// message. Validation failures never reach the backend.
func validationMessage(err error) string {
	if err == nil {
		return ""
	}

	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return "Invalid input"
	}

	first := fieldErrors[0]
	switch first.StructField() + "." + first.Tag() {
	case "DisplayName.required":
		return "Please enter your name"
	case "Email.required":
		return "Please enter your email"
	case "Email.email":
		return "Please enter a valid email"
	case "Password.required":
		return "Please enter your password"
	case "Password.min":
		return "Password must be at least 6 characters"
	case "ConfirmPassword.eqfield":
		return "Passwords do not match"
	}
	return "Invalid input"
}
