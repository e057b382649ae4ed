package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

func validSignupForm() model.SignupForm {
	return model.SignupForm{
		FullName:        "Alice",
		Username:        "alice",
		Email:           "a@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		TermsAccepted:   true,
	}
}

func TestValidateSignup_Order(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.SignupForm)
		want   error
	}{
		{name: "valid", mutate: func(*model.SignupForm) {}},
		{name: "missing full name", mutate: func(f *model.SignupForm) { f.FullName = "" }, want: model.ErrMissingFields},
		{name: "missing confirmation", mutate: func(f *model.SignupForm) { f.ConfirmPassword = "" }, want: model.ErrMissingFields},
		{name: "missing wins over bad email", mutate: func(f *model.SignupForm) {
			f.Username = ""
			f.Email = "nope"
		}, want: model.ErrMissingFields},
		{name: "bad email", mutate: func(f *model.SignupForm) { f.Email = "alice@x" }, want: model.ErrInvalidEmailFormat},
		{name: "email wins over weak password", mutate: func(f *model.SignupForm) {
			f.Email = "alice.x.com"
			f.Password = "abc"
		}, want: model.ErrInvalidEmailFormat},
		{name: "weak password", mutate: func(f *model.SignupForm) {
			f.Password = "abc12"
			f.ConfirmPassword = "abc12"
		}, want: model.ErrWeakPassword},
		{name: "weak wins over mismatch", mutate: func(f *model.SignupForm) { f.Password = "abc" }, want: model.ErrWeakPassword},
		{name: "mismatch", mutate: func(f *model.SignupForm) { f.ConfirmPassword = "secret2" }, want: model.ErrPasswordMismatch},
		{name: "mismatch wins over terms", mutate: func(f *model.SignupForm) {
			f.ConfirmPassword = "secret2"
			f.TermsAccepted = false
		}, want: model.ErrPasswordMismatch},
		{name: "terms", mutate: func(f *model.SignupForm) { f.TermsAccepted = false }, want: model.ErrTermsNotAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSignupForm()
			tt.mutate(&form)

			_, err := validateSignup(form)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheckPassword(t *testing.T) {
	advisory, err := checkPassword("secret1")
	assert.NoError(t, err)
	assert.Empty(t, advisory)

	advisory, err = checkPassword("secret")
	assert.NoError(t, err)
	assert.Equal(t, AdvisoryNoDigit, advisory)

	_, err = checkPassword("12345")
	assert.ErrorIs(t, err, model.ErrWeakPassword)

	// Length counts characters, not bytes.
	_, err = checkPassword("пароль")
	assert.NoError(t, err)
	_, err = checkPassword("ключ1")
	assert.ErrorIs(t, err, model.ErrWeakPassword)
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@x.com", "first.last+tag@sub.example.org", "x_y%z@a-b.io"} {
		assert.True(t, validEmail(ok), ok)
	}
	for _, bad := range []string{"", "a@x", "a@x.c", "@x.com", "a x@y.com", "a@x.com "} {
		assert.False(t, validEmail(bad), bad)
	}
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, validateLogin(model.LoginForm{Username: "alice", Password: "x"}))
	assert.ErrorIs(t, validateLogin(model.LoginForm{Username: "alice"}), model.ErrMissingFields)
	assert.ErrorIs(t, validateLogin(model.LoginForm{Password: "x"}), model.ErrMissingFields)
}
