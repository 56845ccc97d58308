package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"
	"gorm.io/gorm"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

func (s *FavoriteService) Favorite(userID, postID uint) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	fav := models.Favorite{UserID: userID, PostID: postID}
	if err := s.db.Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

func (s *FavoriteService) Unfavorite(userID, postID uint) error {
	result := s.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *FavoriteService) IsFavorite(userID, postID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's favorited posts, most recently favorited first.
func (s *FavoriteService) ListByUser(userID uint) ([]dto.PostResponse, error) {
	var rows []struct {
		models.Post
		AuthorLogin string
	}
	err := s.db.Model(&models.Post{}).
		Select("posts.*, users.login AS author_login").
		Joins("JOIN favorites ON favorites.post_id = posts.id").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.PostResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.PostResponse{
			ID:          r.ID,
			AuthorID:    r.AuthorID,
			AuthorLogin: r.AuthorLogin,
			Title:       r.Title,
			Content:     r.Content,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
	}
	return out, nil
}
