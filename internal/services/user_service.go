package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/security"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/validation"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("id").Find(&users).Error
	return users, err
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial profile patch. Nil fields stay untouched and
// updated_at is refreshed on every successful call.
func (s *UserService) Update(userID uint, patch *dto.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.Email != nil {
		if err := validation.ValidateEmail(*patch.Email); err != nil {
			return nil, err
		}
		updates["email"] = *patch.Email
	}
	if patch.Login != nil {
		if err := validation.ValidateLogin(*patch.Login); err != nil {
			return nil, err
		}
		updates["login"] = *patch.Login
	}
	if patch.Password != nil {
		if err := validation.ValidatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := security.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = hash
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if patch.Email != nil {
				var count int64
				s.db.Model(&models.User{}).
					Where("email = ? AND id <> ?", *patch.Email, userID).
					Count(&count)
				if count > 0 {
					return nil, ErrEmailTaken
				}
			}
			return nil, ErrLoginTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user account. Only admins may call this and never on
// themselves. The user's likes, favorites and authored posts go with them:
// every post keeps a live author reference, so authored posts (and their
// likes/favorites) are deleted in the same transaction.
func (s *UserService) Delete(targetID, actingID uint) error {
	var acting models.User
	if err := s.db.First(&acting, actingID).Error; err != nil {
		return ErrUserNotFound
	}
	if !acting.IsAdmin {
		return ErrForbidden
	}
	if targetID == actingID {
		return ErrSelfDelete
	}

	var target models.User
	if err := s.db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).
			Where("author_id = ?", targetID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", targetID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", targetID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
}
