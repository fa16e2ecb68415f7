package handler

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// AuthService defines signup, signin and email verification operations.
type AuthService interface {
	Signup(ctx context.Context, email, username, password string) (model.Profile, error)
	Signin(ctx context.Context, email, password string) (string, error)
	VerifyEmail(ctx context.Context, token string) error
}

// Auth handles the /auth endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Signup creates a new unverified account.
func (h *Auth) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, fmt.Errorf("%w: malformed body", model.ErrValidation))
	}
	if err := req.Validate(); err != nil {
		return handleError(c, fmt.Errorf("%w: %s", model.ErrValidation, err))
	}

	profile, err := h.authService.Signup(c.UserContext(), req.Email, req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: signup rejected",
			"email", req.Email,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// Signin exchanges form-encoded credentials for a bearer token. The
// form field is named username but carries the account email.
func (h *Auth) Signin(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return handleError(c, fmt.Errorf("%w: username and password are required", model.ErrValidation))
	}

	token, err := h.authService.Signin(c.UserContext(), email, password)
	if err != nil {
		h.logger.Info("Auth handler: signin rejected",
			"email", email,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// VerifyEmail redeems the verification token from the query string.
func (h *Auth) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return handleError(c, fmt.Errorf("%w: token is required", model.ErrValidation))
	}

	if err := h.authService.VerifyEmail(c.UserContext(), token); err != nil {
		h.logger.Info("Auth handler: email verification rejected",
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(statusResponse{Status: "verified"})
}
