package auth

import (
	"testing"

	"grainbook-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestVerifyUser_Nil(t *testing.T) {
	u, err := VerifyUser(nil)
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_EmptyMap(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{})
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_NoUserID(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"fullname": "Test",
		"email":    "a@b.com",
	})
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_Valid(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"user_id":  "550e8400-e29b-41d4-a716-446655440000",
		"fullname": "Test User",
		"email":    "test@example.com",
		"role":     "viewer",
		"business_id": "660e8400-e29b-41d4-a716-446655440000",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", u.UserID)
	assert.Equal(t, "Test User", u.Fullname)
	assert.Equal(t, "test@example.com", u.Email)
	assert.Equal(t, "viewer", u.Role)
	require.NotNil(t, u.BusinessID)
	assert.Equal(t, "660e8400-e29b-41d4-a716-446655440000", *u.BusinessID)
}

func TestVerifyUser_NilBusinessID(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"user_id":  "550e8400-e29b-41d4-a716-446655440000",
		"fullname": "Test",
		"email":    "a@b.com",
		"role":     "viewer",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Nil(t, u.BusinessID)
}

func setupLoginTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!pass1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		Fullname:     "Test User",
		Email:        "test@example.com",
		PasswordHash: string(hash),
		Role:         "member",
	}).Error)
	return db
}

func TestLoginUser(t *testing.T) {
	db := setupLoginTest(t)

	u, err := LoginUser(db, LoginInput{Email: "test@example.com", Password: "s3cret!pass1"})
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", u.Email)

	_, err = LoginUser(db, LoginInput{Email: "test@example.com", Password: "wrong"})
	assert.Equal(t, ErrIncorrectPassword, err)

	_, err = LoginUser(db, LoginInput{Email: "nobody@example.com", Password: "s3cret!pass1"})
	assert.Equal(t, ErrInvalidEmail, err)

	_, err = LoginUser(db, LoginInput{})
	assert.Equal(t, ErrEmailPasswordRequired, err)
}

func TestRegisterBusiness(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Business{}, &domain.User{}))

	input := SignupInput{
		BusinessName: "Prairie Grain Co",
		Fullname:     "Jo Farmer",
		Email:        "jo@prairie.example",
		Password:     "s3cret!pass",
	}
	u, err := RegisterBusiness(db, input)
	require.NoError(t, err)
	assert.Equal(t, "owner", u.Role)
	require.NotNil(t, u.BusinessID)

	var biz domain.Business
	require.NoError(t, db.First(&biz, "business_id = ?", u.BusinessID).Error)
	assert.Equal(t, "Prairie Grain Co", biz.Name)

	// Duplicate email is rejected and leaves no orphan business behind.
	input.BusinessName = "Other Grain Co"
	_, err = RegisterBusiness(db, input)
	assert.Equal(t, ErrEmailTaken, err)
	var bizCount int64
	require.NoError(t, db.Model(&domain.Business{}).Count(&bizCount).Error)
	assert.EqualValues(t, 1, bizCount)
}

func TestRegisterBusiness_Validation(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Business{}, &domain.User{}))

	_, err = RegisterBusiness(db, SignupInput{})
	assert.Equal(t, ErrSignupFields, err)

	_, err = RegisterBusiness(db, SignupInput{
		BusinessName: "Prairie Grain Co", Fullname: "Jo", Email: "not-an-email", Password: "s3cret!pass",
	})
	assert.Equal(t, ErrInvalidEmailFormat, err)

	_, err = RegisterBusiness(db, SignupInput{
		BusinessName: "Prairie Grain Co", Fullname: "Jo", Email: "jo@prairie.example", Password: "short",
	})
	assert.Equal(t, ErrWeakPassword, err)
}
