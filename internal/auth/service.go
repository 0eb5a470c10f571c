package auth

import (
	"grainbook-backend/internal/constants"
	"grainbook-backend/internal/domain"
	"grainbook-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID     string  `json:"user_id"`
	Fullname   string  `json:"fullname"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	BusinessID *string `json:"business_id"`
}

// UserFinder abstracts user lookup by email+password (for production GORM or test doubles).
type UserFinder interface {
	FindByEmailAndPassword(email, password string) (*domain.User, error)
}

// GormUserFinder implements UserFinder using GORM and bcrypt.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByEmailAndPassword(email, password string) (*domain.User, error) {
	return LoginUser(g.DB, LoginInput{Email: email, Password: password})
}

// LoginUser finds user by email and verifies password. Returns user for session or error.
func LoginUser(db *gorm.DB, input LoginInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u domain.User
	if err := db.Where("email = ?", input.Email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &u, nil
}

// SignupInput for registering a new business with its owner account.
type SignupInput struct {
	BusinessName string `json:"business_name"`
	Fullname     string `json:"fullname"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

// RegisterBusiness creates a business and its owner user in one transaction.
// The first user of a business always gets the owner role.
func RegisterBusiness(db *gorm.DB, input SignupInput) (*domain.User, error) {
	if input.BusinessName == "" || input.Fullname == "" || input.Email == "" || input.Password == "" {
		return nil, ErrSignupFields
	}
	if !validation.IsValidEmail(input.Email) {
		return nil, ErrInvalidEmailFormat
	}
	if !validation.IsValidPassword(input.Password) {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		biz := domain.Business{Name: input.BusinessName}
		if err := tx.Create(&biz).Error; err != nil {
			return err
		}

		user = &domain.User{
			Fullname:     input.Fullname,
			Email:        input.Email,
			PasswordHash: string(hash),
			Role:         constants.Owner,
			BusinessID:   &biz.BusinessID,
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyUser validates session user and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	out := &SessionUserShape{
		UserID:   userID,
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}
	if b, ok := m["business_id"]; ok && b != nil {
		if s, ok := b.(string); ok {
			out.BusinessID = &s
		}
	}
	return out, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
