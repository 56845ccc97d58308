package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"
	"gorm.io/gorm"
)

// MaxPageSize caps list and search page sizes to bound response bodies.
const MaxPageSize = 100

const defaultPageSize = 20

// likeEscaper neutralizes LIKE metacharacters so query text always matches
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return skip, limit
}

// Create stores a post authored by userID. The author must exist.
func (s *PostService) Create(userID uint, title, content string) (*dto.PostResponse, error) {
	var author models.User
	if err := s.db.First(&author, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	post := models.Post{
		AuthorID: userID,
		Title:    title,
		Content:  content,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return toPostResponse(&post, author.Login), nil
}

func (s *PostService) Get(postID uint) (*dto.PostResponse, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return toPostResponse(&post, post.Author.Login), nil
}

// List returns posts newest-first.
func (s *PostService) List(skip, limit int) ([]dto.PostResponse, error) {
	skip, limit = clampPage(skip, limit)

	var posts []models.Post
	err := s.db.Preload("Author").
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return toPostResponses(posts), nil
}

// Search matches a case-insensitive substring against title or content.
// An empty query matches nothing, not everything.
func (s *PostService) Search(query string, skip, limit int) ([]dto.PostResponse, error) {
	if query == "" {
		return []dto.PostResponse{}, nil
	}
	skip, limit = clampPage(skip, limit)

	pattern := "%" + likeEscaper.Replace(query) + "%"
	var posts []models.Post
	err := s.db.Preload("Author").
		Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\'`, pattern, pattern).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return toPostResponses(posts), nil
}

// Update applies a partial patch and always refreshes updated_at, even when
// the patch carries no fields.
func (s *PostService) Update(postID uint, patch *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}

	if err := s.db.Model(&post).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	// Re-read so the response reflects exactly what was committed.
	if err := s.db.Preload("Author").First(&post, postID).Error; err != nil {
		return nil, err
	}
	return toPostResponse(&post, post.Author.Login), nil
}

// Delete removes the post together with every like and favorite pointing at
// it. All three deletes commit or roll back as one unit.
func (s *PostService) Delete(postID uint) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// AuthorID reports who owns a post, for owner-or-admin checks.
func (s *PostService) AuthorID(postID uint) (uint, error) {
	var post models.Post
	if err := s.db.Select("id", "author_id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return post.AuthorID, nil
}

func toPostResponse(post *models.Post, authorLogin string) *dto.PostResponse {
	return &dto.PostResponse{
		ID:          post.ID,
		AuthorID:    post.AuthorID,
		AuthorLogin: authorLogin,
		Title:       post.Title,
		Content:     post.Content,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func toPostResponses(posts []models.Post) []dto.PostResponse {
	out := make([]dto.PostResponse, len(posts))
	for i := range posts {
		out[i] = *toPostResponse(&posts[i], posts[i].Author.Login)
	}
	return out
}
