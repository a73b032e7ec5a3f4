package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"myTourGuide/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	users    map[uint]domain.User
	loginErr error
}

func (f *fakeUserService) Register(_ context.Context, user *domain.User) (domain.User, error) {
	if user.Email == "taken@example.com" {
		return domain.User{}, errors.New("email already exists")
	}
	user.ID = 1
	return *user, nil
}

func (f *fakeUserService) Login(_ context.Context, email, password, _, _ string) (string, domain.User, error) {
	if f.loginErr != nil {
		return "", domain.User{}, f.loginErr
	}
	return "token-123", domain.User{ID: 1, Email: email}, nil
}

func (f *fakeUserService) ValidateTokenFromRedis(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (f *fakeUserService) RefreshToken(_ context.Context, _, _, _ string) (string, domain.User, error) {
	return "token-456", domain.User{ID: 1}, nil
}

func (f *fakeUserService) Logout(_ context.Context, _ uint, _ string) error { return nil }

func (f *fakeUserService) VerifyEmail(_ context.Context, code string) error {
	if code == "stale" {
		return errors.New("verification code is invalid or expired")
	}
	return nil
}

func (f *fakeUserService) GetUserByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return user, nil
}

func (f *fakeUserService) GetAllUsers(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserService) UpdateUser(_ context.Context, id uint, _ *domain.User) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return user, nil
}

func (f *fakeUserService) DeleteUser(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return errors.New("user not found")
	}
	delete(f.users, id)
	return nil
}

func newUserTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register(t *testing.T) {
	handler := NewUserHandler(&fakeUserService{})

	c, rec := newUserTestContext(http.MethodPost, "/api/v1/users/register",
		`{"full_name":"Alex Chen","email":"alex@example.com","password":"secret1"}`)
	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "alex@example.com")

	// short password fails validation before reaching the service
	c, rec = newUserTestContext(http.MethodPost, "/api/v1/users/register",
		`{"full_name":"Alex Chen","email":"alex@example.com","password":"abc"}`)
	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newUserTestContext(http.MethodPost, "/api/v1/users/register",
		`{"full_name":"Alex Chen","email":"taken@example.com","password":"secret1"}`)
	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")
}

func TestUserHandler_Login(t *testing.T) {
	svc := &fakeUserService{}
	handler := NewUserHandler(svc)

	c, rec := newUserTestContext(http.MethodPost, "/api/v1/users/login",
		`{"email":"alex@example.com","password":"secret1"}`)
	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token-123")

	svc.loginErr = errors.New("invalid email or password")
	c, rec = newUserTestContext(http.MethodPost, "/api/v1/users/login",
		`{"email":"alex@example.com","password":"wrong12"}`)
	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_VerifyEmail(t *testing.T) {
	handler := NewUserHandler(&fakeUserService{})

	c, rec := newUserTestContext(http.MethodGet, "/api/v1/users/email-verification/ok", "")
	c.SetParamNames("code")
	c.SetParamValues("ok")
	require.NoError(t, handler.VerifyEmail(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newUserTestContext(http.MethodGet, "/api/v1/users/email-verification/stale", "")
	c.SetParamNames("code")
	c.SetParamValues("stale")
	require.NoError(t, handler.VerifyEmail(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_GetUserByID(t *testing.T) {
	handler := NewUserHandler(&fakeUserService{users: map[uint]domain.User{
		7: {ID: 7, FullName: "Alex Chen", Email: "alex@example.com"},
	}})

	c, rec := newUserTestContext(http.MethodGet, "/api/v1/users/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, handler.GetUserByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alex Chen")

	c, rec = newUserTestContext(http.MethodGet, "/api/v1/users/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, handler.GetUserByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newUserTestContext(http.MethodGet, "/api/v1/users/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, handler.GetUserByID(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	svc := &fakeUserService{users: map[uint]domain.User{
		7: {ID: 7, FullName: "Alex Chen"},
	}}
	handler := NewUserHandler(svc)

	c, rec := newUserTestContext(http.MethodDelete, "/api/v1/users/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, handler.DeleteUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, svc.users, uint(7))

	c, rec = newUserTestContext(http.MethodDelete, "/api/v1/users/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, handler.DeleteUser(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
