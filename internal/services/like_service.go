package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"
	"gorm.io/gorm"
)

type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Like records that userID liked postID. The (user, post) unique index is
// what actually decides "already liked" under concurrent requests.
func (s *LikeService) Like(userID, postID uint) (*models.Like, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	like := models.Like{UserID: userID, PostID: postID}
	if err := s.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyLiked
		}
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	return &like, nil
}

func (s *LikeService) Unlike(userID, postID uint) error {
	result := s.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (s *LikeService) Count(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (s *LikeService) IsLiked(userID, postID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}
