package service

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

const minPasswordLength = 6

// AdvisoryNoDigit is returned with an otherwise valid password lacking digits.
const AdvisoryNoDigit = "Password is valid (consider adding numbers for extra security)"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// validEmail reports whether email has a local@domain.tld shape.
func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// checkPassword enforces the minimum length and returns a non-blocking
// advisory for passwords without digits.
func checkPassword(password string) (string, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return "", model.ErrWeakPassword
	}
	for _, r := range password {
		if unicode.IsDigit(r) {
			return "", nil
		}
	}
	return AdvisoryNoDigit, nil
}

func validateLogin(form model.LoginForm) error {
	if form.Username == "" || form.Password == "" {
		return model.ErrMissingFields
	}
	return nil
}

// validateSignup runs the signup checks in order and reports the first
// failure only.
func validateSignup(form model.SignupForm) (string, error) {
	if form.FullName == "" || form.Username == "" || form.Email == "" ||
		form.Password == "" || form.ConfirmPassword == "" {
		return "", model.ErrMissingFields
	}
	if !validEmail(form.Email) {
		return "", model.ErrInvalidEmailFormat
	}
	advisory, err := checkPassword(form.Password)
	if err != nil {
		return "", err
	}
	if form.Password != form.ConfirmPassword {
		return "", model.ErrPasswordMismatch
	}
	if !form.TermsAccepted {
		return "", model.ErrTermsNotAccepted
	}
	return advisory, nil
}
