package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"bakery-shop/internal/dto"
	"bakery-shop/internal/middleware"
	"bakery-shop/internal/repository"
	"bakery-shop/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, tok, err := h.authService.Register(ctx, req)
	switch {
	case errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrUserExists):
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this contact method")
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   tok,
		User:    user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, tok, err := h.authService.Login(ctx, req.Contact, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   tok,
		User:    user,
	})
}

// Logout is a stateless no-op: the client discards its token, nothing is
// tracked server-side.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

func (h *AuthHandler) Status(c echo.Context) error {
	if userID, ok := middleware.UserIDFromContext(c); ok {
		return c.JSON(http.StatusOK, dto.StatusResponse{
			Authenticated: true,
			UserID:        userID,
		})
	}
	return c.JSON(http.StatusOK, dto.StatusResponse{Authenticated: false})
}

func (h *AuthHandler) CurrentUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	user, err := h.authService.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
