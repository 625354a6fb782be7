package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesmara/etiquetas/internal/apperror"
)

// mockService implements AuthService with per-test function fields.
type mockService struct {
	loginFn  func(ctx context.Context, req LoginRequest) (string, UserSnapshot, error)
	statusFn func(ctx context.Context, token string) (*UserSnapshot, error)
	logoutFn func(ctx context.Context, token string) error
}

func (m *mockService) Login(ctx context.Context, req LoginRequest) (string, UserSnapshot, error) {
	return m.loginFn(ctx, req)
}

func (m *mockService) Status(ctx context.Context, token string) (*UserSnapshot, error) {
	return m.statusFn(ctx, token)
}

func (m *mockService) Logout(ctx context.Context, token string) error {
	return m.logoutFn(ctx, token)
}

func devCookiePolicy() CookiePolicy {
	return CookiePolicy{Secure: false, SameSite: http.SameSiteLaxMode, MaxAge: 86400}
}

func newAuthContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := rec.Result()
	for _, cookie := range res.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestHandlerLoginSetsHttpOnlyCookie(t *testing.T) {
	h := NewHandler(&mockService{
		loginFn: func(ctx context.Context, req LoginRequest) (string, UserSnapshot, error) {
			return "tok123", UserSnapshot{ID: 1, Email: req.Email}, nil
		},
	}, devCookiePolicy())

	c, rec := newAuthContext(t, http.MethodPost, "/api/login",
		`{"email":"docesmara.admin@gmail.com","password":"secret123"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookieFrom(t, rec)
	assert.Equal(t, "tok123", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.Contains(t, rec.Body.String(), "Login realizado com sucesso")
}

func TestHandlerLoginValidatesBeforeService(t *testing.T) {
	serviceCalled := false
	h := NewHandler(&mockService{
		loginFn: func(ctx context.Context, req LoginRequest) (string, UserSnapshot, error) {
			serviceCalled = true
			return "", UserSnapshot{}, nil
		},
	}, devCookiePolicy())

	c, _ := newAuthContext(t, http.MethodPost, "/api/login",
		`{"email":"not-an-email","password":"123"}`)

	err := h.Login(c)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, "Email inválido", appErr.Fields[0].Mensagem)
	assert.Equal(t, "A senha deve ter pelo menos 6 caracteres", appErr.Fields[1].Mensagem)
	assert.False(t, serviceCalled, "malformed credentials must never reach the service")
}

func TestHandlerStatusWithoutCookie(t *testing.T) {
	h := NewHandler(&mockService{
		statusFn: func(ctx context.Context, token string) (*UserSnapshot, error) {
			assert.Empty(t, token)
			return nil, nil
		},
	}, devCookiePolicy())

	c, rec := newAuthContext(t, http.MethodGet, "/api/auth/status", "")
	require.NoError(t, h.Status(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}

func TestHandlerStatusWithSession(t *testing.T) {
	h := NewHandler(&mockService{
		statusFn: func(ctx context.Context, token string) (*UserSnapshot, error) {
			assert.Equal(t, "tok123", token)
			return &UserSnapshot{ID: 1, Email: "docesmara.admin@gmail.com", IsAdmin: true}, nil
		},
	}, devCookiePolicy())

	c, rec := newAuthContext(t, http.MethodGet, "/api/auth/status", "")
	c.Request().AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok123"})

	require.NoError(t, h.Status(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"authenticated":true,"user":{"id":1,"email":"docesmara.admin@gmail.com","isAdmin":true}}`,
		rec.Body.String())
}

func TestHandlerLogoutClearsCookie(t *testing.T) {
	h := NewHandler(&mockService{
		logoutFn: func(ctx context.Context, token string) error { return nil },
	}, devCookiePolicy())

	c, rec := newAuthContext(t, http.MethodPost, "/api/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok123"})

	require.NoError(t, h.Logout(c))

	cookie := sessionCookieFrom(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.Contains(t, rec.Body.String(), "Logout realizado com sucesso")
}
