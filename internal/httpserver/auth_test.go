package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestRegisterCreatesCustomerProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/auth/register", map[string]string{
		"username": "new@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	env.decode(rec, &user)
	require.Greater(t, user.ID, uint(0))
	require.Equal(t, models.RoleUser, user.Role)

	var customer models.Customer
	require.NoError(t, env.DB.Where("user_id = ?", user.ID).First(&customer).Error)
	require.Equal(t, models.MembershipBronze, customer.Membership)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"username": "dup@example.com", "password": "password"}

	rec := env.doJSON(http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/auth/register", map[string]string{"username": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	login(t, env, "user@example.com")

	rec := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"username": "user@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginSetsCookies(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"username": "user@example.com", "password": "password"}
	rec := env.doJSON(http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPost, "/auth/login", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	names := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		names[ck.Name] = ck.HttpOnly
	}
	require.True(t, names["accessToken"])
	require.True(t, names["refreshToken"])
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"username": "user@example.com", "password": "password"}
	rec := env.doJSON(http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.doJSON(http.MethodPost, "/auth/login", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	refresh := cookieByName(t, rec, "refreshToken")

	rec = env.doJSON(http.MethodPost, "/auth/refresh", nil, refresh)
	require.Equal(t, http.StatusOK, rec.Code)

	// The used token is revoked; replaying it fails.
	rec = env.doJSON(http.MethodPost, "/auth/refresh", nil, refresh)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"username": "user@example.com", "password": "password"}
	rec := env.doJSON(http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.doJSON(http.MethodPost, "/auth/login", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	refresh := cookieByName(t, rec, "refreshToken")

	rec = env.doJSON(http.MethodPost, "/auth/logout", nil, refresh)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, "/auth/refresh", nil, refresh)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireLoginRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	bad := &http.Cookie{Name: "accessToken", Value: "not.a.jwt", Path: "/"}
	rec := env.doJSON(http.MethodGet, "/store/orders", nil, bad)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name && ck.Value != "" {
			return &http.Cookie{Name: ck.Name, Value: ck.Value, Path: "/"}
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}
