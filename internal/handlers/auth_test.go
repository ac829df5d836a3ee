package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leeder-app/leeder-api/internal/middleware"
)

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/auth/register", "", map[string]any{
		"name":     "",
		"email":    "not-an-email",
		"password": "123",
		"role":     "admin", // never assignable publicly
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "validation failures carry a per-field errors map")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "role")
}

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/auth/register", "", map[string]any{
		"name":     "Alex Martin",
		"email":    "Alex@Test.fr",
		"password": "secret123",
		"role":     "freelancer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "register sets the session cookie")
	assert.NotEmpty(t, sessionCookie.Value)
	decodeBody(t, resp)

	// email was lowercased on the way in
	resp = env.request(t, "POST", "/api/auth/login", "", map[string]any{
		"email":    "alex@test.fr",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	// session cookie works against a protected route
	resp = env.request(t, "GET", "/api/me", sessionCookie.Value, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody(t, resp)
	data := me["data"].(map[string]any)
	assert.Equal(t, "alex@test.fr", data["email"])
	assert.Equal(t, "freelancer", data["role"])
	assert.Equal(t, false, data["profile_completed"])
}

func TestLoginWrongCredentialsSameMessage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "freelancer", "known@test")

	// unknown email
	resp := env.request(t, "POST", "/api/auth/login", "", map[string]any{
		"email": "nobody@test", "password": "whatever",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b1 := decodeBody(t, resp)

	// known email, wrong password
	resp = env.request(t, "POST", "/api/auth/login", "", map[string]any{
		"email": "known@test", "password": "wrong",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b2 := decodeBody(t, resp)

	assert.Equal(t, false, b1["success"])
	assert.Equal(t, b1["message"], b2["message"],
		"the answer must not reveal whether the email exists")
}

func TestDuplicateEmailRegistration(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"name": "A", "email": "dup@test", "password": "secret123", "role": "company",
	}
	resp := env.request(t, "POST", "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp)

	resp = env.request(t, "POST", "/api/auth/register", "", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
}

func TestProtectedRoutesRequireCookie(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/me", "/api/dashboard", "/api/freelancer/missions", "/api/company/missions"} {
		resp := env.request(t, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}
