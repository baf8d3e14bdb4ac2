package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/fixture"
	"storefront/internal/model"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	store *fixture.Store
	jwt   *auth.JWTService
	log   logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(store *fixture.Store, jwtService *auth.JWTService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{store: store, jwt: jwtService, log: log}
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} errors.DetailResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		h.log.WithField("email", req.Email).Info("login rejected")
		return respondError(c, err)
	}

	token, err := h.jwt.GenerateAccessToken(*user)
	if err != nil {
		h.log.WithError(err).Error("sign access token")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: user})
}
