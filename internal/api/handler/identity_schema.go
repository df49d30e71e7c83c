package handler

// errorResponse is the standard error envelope returned on 4xx/5xx responses
// outside the identity endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Login ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// signInResult reports the sign-in flags clients of the identity API expect.
// Two-factor and confirmation gating are not enforced, so only Succeeded varies.
type signInResult struct {
	Succeeded         bool `json:"succeeded"`
	IsLockedOut       bool `json:"isLockedOut"`
	IsNotAllowed      bool `json:"isNotAllowed"`
	RequiresTwoFactor bool `json:"requiresTwoFactor"`
}

type loginResponse struct {
	Result   signInResult `json:"result"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Token    string       `json:"token"`
}

// --- Register ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
	JobTitle string `json:"jobTitle"`
}

type identityError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type registerResponse struct {
	Succeeded bool            `json:"succeeded"`
	Errors    []identityError `json:"errors"`
}

// --- Confirm email ---

type confirmEmailRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}
