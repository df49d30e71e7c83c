package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/api/metrics"
	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

const (
	invalidLoginMessage  = "invalid login attempt"
	unknownFailureReason = "An unknown failure has occurred."
)

type IdentityHandler struct {
	service ports.AuthService
	log     zerolog.Logger
}

func NewIdentityHandler(service ports.AuthService, log zerolog.Logger) *IdentityHandler {
	return &IdentityHandler{service: service, log: log}
}

// Login authenticates a user and returns an access token.
//
// @Summary      Login
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /identity/login [post]
func (h *IdentityHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.loginFailed(c, "rejected")
	}
	if err := c.Validate(&req); err != nil {
		return h.loginFailed(c, "rejected")
	}

	res, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return h.loginFailed(c, "rejected")
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("login failed")
		return h.loginFailed(c, "error")
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Result:   signInResult{Succeeded: true},
		Username: res.Username,
		Email:    res.Email,
		Token:    res.Token,
	})
}

// loginFailed renders the single response shared by every login failure, so
// clients cannot tell an unknown user from a wrong password.
func (h *IdentityHandler) loginFailed(c echo.Context, result string) error {
	metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
	return c.JSON(http.StatusBadRequest, errorResponse{Error: invalidLoginMessage})
}

// Register creates a user account, its role if needed, and the JobTitle claim.
//
// @Summary      Register a new user
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  registerResponse
// @Failure      400   {object}  registerResponse
// @Router       /identity/register [post]
func (h *IdentityHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return h.registerFailed(c, "rejected", []identityError{{Code: domain.CodeInvalidRequest, Description: "invalid payload"}})
	}
	if err := c.Validate(&req); err != nil {
		return h.registerFailed(c, "rejected", []identityError{{Code: domain.CodeInvalidRequest, Description: err.Error()}})
	}

	_, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		JobTitle: req.JobTitle,
	})
	if err != nil {
		var regErr *domain.RegistrationError
		if errors.As(err, &regErr) && len(regErr.Reasons) > 0 {
			return h.registerFailed(c, "rejected", toIdentityErrors(regErr.Reasons))
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("registration failed")
		return h.registerFailed(c, "error", []identityError{{Code: domain.CodeDefaultError, Description: unknownFailureReason}})
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, registerResponse{Succeeded: true, Errors: []identityError{}})
}

func (h *IdentityHandler) registerFailed(c echo.Context, result string, errs []identityError) error {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
	return c.JSON(http.StatusBadRequest, registerResponse{Succeeded: false, Errors: errs})
}

// ConfirmEmail acknowledges an email confirmation request. It always answers 200.
//
// @Summary      Confirm email
// @Tags         identity
// @Accept       json
// @Param        body  body  confirmEmailRequest  false  "Confirmation token"
// @Success      200
// @Router       /identity/confirmemail [post]
func (h *IdentityHandler) ConfirmEmail(c echo.Context) error {
	var req confirmEmailRequest
	_ = c.Bind(&req)

	if err := h.service.ConfirmEmail(c.Request().Context(), ports.ConfirmEmailInput{
		UserID: req.UserID,
		Token:  req.Token,
	}); err != nil {
		h.log.Warn().Err(err).Str("user_id", req.UserID).Msg("email confirmation failed")
	}
	return c.NoContent(http.StatusOK)
}

func toIdentityErrors(reasons []domain.Reason) []identityError {
	out := make([]identityError, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, identityError{Code: r.Code, Description: r.Description})
	}
	return out
}
