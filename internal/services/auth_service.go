package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/security"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/validation"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	tokens *security.TokenCodec
}

func NewAuthService(db *gorm.DB, tokens *security.TokenCodec) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// Register creates a new non-admin account. Email and login uniqueness is
// ultimately enforced by the unique indexes; a constraint violation on
// insert is reported as the matching domain conflict.
func (s *AuthService) Register(login, email, password string) (*models.User, error) {
	if err := validation.ValidateLogin(login); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Login:        login,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      false,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(email, login)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// classifyDuplicate decides which unique index was hit so the caller gets a
// field-specific conflict message.
func (s *AuthService) classifyDuplicate(email, login string) error {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return ErrEmailTaken
	}
	return ErrLoginTaken
}

// Login authenticates by login and returns the user plus a signed access
// token. Unknown user and wrong password are indistinguishable.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("login = ?", username).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.ID, 0)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return &user, token, nil
}

// CurrentUser resolves the acting identity for an already-verified token subject.
func (s *AuthService) CurrentUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
