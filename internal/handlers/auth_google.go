package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/leeder-app/leeder-api/internal/middleware"
	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/store"
	"github.com/leeder-app/leeder-api/internal/utils"
)

type GoogleOAuthHandler struct {
	Profiles        *store.ProfileStore
	JWTSecret       string
	Expires         int
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func tempCookie(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})
}

func clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HTTPOnly: true, Secure: false, SameSite: "Lax"})
}

// GoogleStart begins the OAuth dance. ?role= pre-selects the sign-up role
// for first-time accounts, matching the /auth?role= query of the web app.
func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	next := c.Query("next", "/dashboard")
	role := c.Query("role", string(models.RoleFreelancer))
	if role != string(models.RoleFreelancer) && role != string(models.RoleCompany) {
		role = string(models.RoleFreelancer)
	}

	st := randomState(32)
	tempCookie(c, "oauth_state", st)
	tempCookie(c, "oauth_next", next)
	tempCookie(c, "oauth_role", role)

	authURL := h.oauthCfg().AuthCodeURL(st, oauth2.AccessTypeOffline)
	return c.Redirect(authURL, http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing code/state")
	}

	stCookie := c.Cookies("oauth_state")
	next := c.Cookies("oauth_next")
	if next == "" {
		next = "/dashboard"
	}

	if stCookie == "" || stCookie != state {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid state")
	}

	tok, err := h.oauthCfg().Exchange(c.Context(), code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to exchange code")
	}

	client := h.oauthCfg().Client(c.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to fetch userinfo")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to decode userinfo")
	}

	email := strings.ToLower(strings.TrimSpace(gu.Email))
	name := strings.TrimSpace(gu.Name)
	if email == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Email not found from Google")
	}

	p, err := h.Profiles.GetByEmail(email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).SendString("DB error")
	}

	if errors.Is(err, store.ErrNotFound) {
		role := models.Role(c.Cookies("oauth_role", string(models.RoleFreelancer)))
		if role != models.RoleFreelancer && role != models.RoleCompany {
			role = models.RoleFreelancer
		}

		// password never used for manual login on Google accounts
		hashed, _ := utils.HashPassword(randomState(24))

		p = &models.Profile{
			Name:     name,
			Email:    email,
			Password: hashed,
			Role:     role,
			PhotoURL: gu.Picture,
		}
		if err := h.Profiles.CreateWithExtension(p); err != nil {
			log.Println("Error creating profile via Google:", err)
			u2 := h.FrontendBaseURL + "/auth?err=" + url.QueryEscape("Échec de la création du compte")
			return c.Redirect(u2, http.StatusTemporaryRedirect)
		}
	}

	jwtToken, err := utils.SignJWT(h.JWTSecret, p.ID.String(), string(p.Role), h.Expires)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to sign jwt")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    jwtToken,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})

	clearCookie(c, "oauth_state")
	clearCookie(c, "oauth_next")
	clearCookie(c, "oauth_role")

	if !strings.HasPrefix(next, "/") {
		next = "/"
	}
	return c.Redirect(h.FrontendBaseURL+next, http.StatusTemporaryRedirect)
}
