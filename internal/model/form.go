package model

// LoginForm is submitted from the login view.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupForm is submitted from the signup view.
type SignupForm struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

// SignupResult describes a created account. Advisory is a non-blocking
// password hint and may be empty.
type SignupResult struct {
	UserID   int64  `json:"user_id"`
	Advisory string `json:"advisory,omitempty"`
}
