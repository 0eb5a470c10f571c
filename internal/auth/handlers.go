package auth

import (
	"context"

	"grainbook-backend/internal/middleware"
	"grainbook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder UserFinder
	DB         *gorm.DB
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

// Signup POST /api/v1/auth/signup — register a business and its owner.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	if h.DB == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var input SignupInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, ErrSignupFields.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := RegisterBusiness(h.DB, input)
	if err != nil {
		switch err {
		case ErrSignupFields, ErrInvalidEmailFormat, ErrWeakPassword:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrEmailTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	var businessIDStr *string
	if user.BusinessID != nil {
		s := user.BusinessID.String()
		businessIDStr = &s
	}
	return response.SuccessCreated(c, "Signup successful", fiber.Map{
		"user": fiber.Map{
			"user_id":     user.UserID.String(),
			"fullname":    user.Fullname,
			"email":       user.Email,
			"role":        user.Role,
			"business_id": businessIDStr,
		},
	}, nil)
}

// LoginRequest body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login — authenticate, create session, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByEmailAndPassword(req.Email, req.Password)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidEmail, ErrIncorrectPassword:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)

	var businessIDStr *string
	if user.BusinessID != nil {
		s := user.BusinessID.String()
		businessIDStr = &s
	}

	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:     user.UserID.String(),
		Fullname:   user.Fullname,
		Email:      user.Email,
		Role:       user.Role,
		BusinessID: businessIDStr,
	})

	ctx := context.Background()
	if err := h.Rdb.SAdd(ctx, userSessionsPrefix+user.UserID.String(), sessionID).Err(); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"user_id":     user.UserID.String(),
			"fullname":    user.Fullname,
			"email":       user.Email,
			"role":        user.Role,
			"business_id": businessIDStr,
		},
	}, nil)
}

// Me GET /api/v1/auth/me — return current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout — remove session tracking, clear cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)

	ctx := context.Background()
	if sessionUser != nil && sessionID != "" {
		if m, ok := sessionUser.(map[string]interface{}); ok {
			if userID, _ := m["user_id"].(string); userID != "" {
				_ = h.Rdb.SRem(ctx, userSessionsPrefix+userID, sessionID).Err()
			}
		}
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}

	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logout successful", fiber.Map{}, nil)
}
