package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/crm-system/internal/api/metrics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a new operator account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return c.JSON(http.StatusCreated, toTokenResponse(res))
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, toTokenResponse(res))
}

// Me returns the account behind the bearer token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Me(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Logout revokes the bearer token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), *claims); err != nil {
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("logout", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

func toTokenResponse(res *ports.AuthResult) tokenResponse {
	return tokenResponse{AccessToken: res.Token, TokenType: "bearer", User: res.User}
}
