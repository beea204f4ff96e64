package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
	"github.com/vertex-clinic/booking-api/internal/core/ports"
)

// SessionIssuer writes the session cookie for a freshly opened session.
type SessionIssuer interface {
	Issue(c echo.Context, sessionID string) error
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     SessionIssuer
}

func NewAuthHandler(authService ports.AuthService, cookies SessionIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the administrator and sets the session cookie.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Admin credentials"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid credentials"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed").SetInternal(err)
	}

	if err := h.cookies.Issue(c, session.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed").SetInternal(err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Login successful"})
}
