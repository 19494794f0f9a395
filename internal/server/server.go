package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"bakery-shop/internal/dto"
	"bakery-shop/internal/handler"
	custommiddleware "bakery-shop/internal/middleware"
	"bakery-shop/internal/service"
	"bakery-shop/internal/token"
)

type Server struct {
	echo         *echo.Echo
	authHandler  *handler.AuthHandler
	orderHandler *handler.OrderHandler
	adminHandler *handler.AdminHandler
	auth         *custommiddleware.AuthMiddleware
}

func NewServer(
	authService service.AuthService,
	orderService service.OrderService,
	tokens *token.Codec,
	staticDir string,
	log *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	if staticDir != "" {
		e.Static("/", staticDir)
	}

	s := &Server{
		echo:         e,
		authHandler:  handler.NewAuthHandler(authService),
		orderHandler: handler.NewOrderHandler(orderService, log),
		adminHandler: handler.NewAdminHandler(authService, orderService, log),
		auth:         custommiddleware.NewAuthMiddleware(tokens),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.POST("/register", s.authHandler.Register)
	api.POST("/login", s.authHandler.Login)
	api.POST("/logout", s.authHandler.Logout)
	api.GET("/auth/status", s.authHandler.Status, s.auth.Optional())
	api.GET("/user", s.authHandler.CurrentUser, s.auth.Require())

	// Order creation keeps the optional token: sessionless checkouts fall
	// back to the contact method in the payload.
	api.POST("/orders", s.orderHandler.Create, s.auth.Optional())
	api.GET("/orders", s.orderHandler.List, s.auth.Require())

	admin := api.Group("/admin", s.auth.Require())
	admin.GET("/database", s.adminHandler.Database)
	admin.POST("/mark-delivered", s.adminHandler.MarkDelivered)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All required fields must be provided")
	}
	return nil
}

// newHTTPErrorHandler keeps the legacy {"error": "..."} body shape the
// client reads, and logs everything that was not an intentional response.
func newHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Server error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		} else {
			log.Error("request failed", zap.Error(err), zap.String("uri", c.Request().RequestURI))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, dto.ErrorResponse{Error: message})
	}
}
