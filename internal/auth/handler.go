package auth

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"

	"github.com/docesmara/etiquetas/internal/apperror"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "etiquetas_session"

// CookiePolicy controls the session cookie attributes, which differ between
// environments: in production the frontend is served from another origin, so
// the cookie must be Secure with SameSite=None; in development Lax works and
// Secure would break plain-HTTP localhost.
type CookiePolicy struct {
	Secure   bool
	SameSite http.SameSite
	MaxAge   int // seconds; matches the session TTL
}

// Handler handles HTTP requests for authentication (login, status, logout).
// Handlers are thin: they bind the request, call the service, and render the
// response. No business logic lives here.
type Handler struct {
	service AuthService
	cookies CookiePolicy
}

// NewHandler creates a new auth handler with the given service and cookie policy.
func NewHandler(service AuthService, cookies CookiePolicy) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// Login processes POST /api/login. Credentials are validated before any
// database lookup; a malformed email or short password never reaches the
// user table.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("Requisição inválida")
	}

	if fields := validateLoginRequest(&req); len(fields) > 0 {
		return apperror.NewValidation("Erro de validação", fields)
	}

	token, user, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login realizado com sucesso",
		"user":    user,
	})
}

// Status processes GET /api/auth/status. An absent or expired session is a
// normal response, never an error.
func (h *Handler) Status(c echo.Context) error {
	user, err := h.service.Status(c.Request().Context(), getSessionToken(c))
	if err != nil {
		return err
	}

	if user == nil {
		return c.JSON(http.StatusOK, map[string]any{"authenticated": false})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          user,
	})
}

// Logout processes POST /api/logout: destroys the session and clears the
// cookie. Safe to call without a session.
func (h *Handler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context(), getSessionToken(c)); err != nil {
		return err
	}

	h.clearSessionCookie(c)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logout realizado com sucesso",
	})
}

// --- Cookie helpers ---

// getSessionToken reads the session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. Always HttpOnly;
// Secure and SameSite come from the environment-dependent policy.
func (h *Handler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
		MaxAge:   h.cookies.MaxAge,
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
		MaxAge:   -1,
	})
}

// --- Validation helpers ---

// validateLoginRequest checks the login credentials' shape. Returns one
// entry per failing field; empty means valid.
func validateLoginRequest(req *LoginRequest) []apperror.FieldError {
	var fields []apperror.FieldError

	if _, err := mail.ParseAddress(req.Email); err != nil {
		fields = append(fields, apperror.FieldError{
			Campo:    "email",
			Mensagem: "Email inválido",
		})
	}
	if len(req.Password) < 6 {
		fields = append(fields, apperror.FieldError{
			Campo:    "password",
			Mensagem: "A senha deve ter pelo menos 6 caracteres",
		})
	}

	return fields
}
