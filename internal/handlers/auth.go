package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leeder-app/leeder-api/internal/middleware"
	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/store"
	"github.com/leeder-app/leeder-api/internal/utils"
)

type AuthHandler struct {
	Profiles  *store.ProfileStore
	JWTSecret string
	Expires   int
}

func NewAuthHandler(profiles *store.ProfileStore, jwtSecret string, expiresMin int) *AuthHandler {
	return &AuthHandler{Profiles: profiles, JWTSecret: jwtSecret, Expires: expiresMin}
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // freelancer / company (jamais admin en public)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))

	errs := FieldErrors{}

	if name == "" {
		errs.Add("name", "Le nom est obligatoire")
	}
	if email == "" {
		errs.Add("email", "L'email est obligatoire")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Format d'email invalide")
	}
	if password == "" {
		errs.Add("password", "Le mot de passe est obligatoire")
	} else if len(password) < 6 {
		errs.Add("password", "Le mot de passe doit faire au moins 6 caractères")
	}
	// admin is never assignable through the public form
	if role != models.RoleFreelancer && role != models.RoleCompany {
		errs.Add("role", "Le rôle doit être freelancer ou company")
	}

	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	if _, err := h.Profiles.GetByEmail(email); err == nil {
		errs := FieldErrors{}
		errs.Add("email", "Cet email est déjà utilisé")
		return validationFail(c, errs)
	} else if !errors.Is(err, store.ErrNotFound) {
		return fail500(c, "Erreur serveur")
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return fail500(c, "Impossible de traiter le mot de passe")
	}

	p := models.Profile{
		Name:     name,
		Email:    email,
		Password: pw,
		Role:     role,
	}

	if err := h.Profiles.CreateWithExtension(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Échec de la création du compte",
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, p.ID.String(), string(p.Role), h.Expires)
	if err != nil {
		return fail500(c, "Impossible de créer le jeton de session")
	}

	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Compte créé avec succès",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    p.ID,
				"name":  p.Name,
				"email": p.Email,
				"role":  p.Role,
			},
		},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if email == "" {
		errs.Add("email", "L'email est obligatoire")
	}
	if password == "" {
		errs.Add("password", "Le mot de passe est obligatoire")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	p, err := h.Profiles.GetByEmail(email)
	if err != nil {
		// same message whether the email exists or not
		return fail200(c, "Email ou mot de passe incorrect")
	}

	if !utils.CheckPassword(p.Password, password) {
		return fail200(c, "Email ou mot de passe incorrect")
	}

	token, err := utils.SignJWT(h.JWTSecret, p.ID.String(), string(p.Role), h.Expires)
	if err != nil {
		return fail200(c, "Impossible de créer le jeton de session")
	}

	h.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Connexion réussie",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    p.ID,
				"name":  p.Name,
				"email": p.Email,
				"role":  p.Role,
			},
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Déconnexion réussie",
	})
}
