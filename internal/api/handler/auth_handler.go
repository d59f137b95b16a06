package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beka-birhanu/distributed-systems/internal/api/metrics"
	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
	"github.com/beka-birhanu/distributed-systems/internal/core/ports"
)

type AuthHandler struct {
	accounts ports.AccountService
}

func NewAuthHandler(accounts ports.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup credentials"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.accounts.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return h.domainError(c, err)
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, signupResponse{ID: user.ID, Username: user.Username})
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return h.domainError(c, err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenKindAccess)).Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenKindRefresh)).Inc()

	return c.JSON(http.StatusOK, loginResponse{
		ID:           result.User.ID,
		Username:     result.User.Username,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// GetUserByID returns a user record without its password hash.
//
// @Summary      Get user by id
// @Tags         user
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /user/{id} [get]
func (h *AuthHandler) GetUserByID(c echo.Context) error {
	user, err := h.accounts.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.domainError(c, err)
	}

	return c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// domainError renders known domain failures with their wire status and
// message. Anything unrecognized bubbles up to the central error handler.
func (h *AuthHandler) domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUsernameTooShort):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username is too short"})
	case errors.Is(err, domain.ErrUsernameTooLong):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username is too long"})
	case errors.Is(err, domain.ErrUsernameInvalidFormat):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username is invalid format"})
	case errors.Is(err, domain.ErrWeakPassword):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Password is too weak"})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid username or password"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "User not found"})
	}
	return err
}
