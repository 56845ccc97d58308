package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) Like(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.LikePostRequest
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	like, err := h.likeService.Like(userID, req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		case errors.Is(err, services.ErrAlreadyLiked):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Post already liked",
			})
		}
		return internalError(c, "like post", err)
	}

	return c.JSON(dto.LikeResponse{
		ID:        like.ID,
		UserID:    like.UserID,
		PostID:    like.PostID,
		CreatedAt: like.CreatedAt,
	})
}

func (h *LikeHandler) Unlike(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	postID, err := c.ParamsInt("post_id")
	if err != nil || postID < 1 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Like not found",
		})
	}

	if err := h.likeService.Unlike(userID, uint(postID)); err != nil {
		if errors.Is(err, services.ErrLikeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Like not found",
			})
		}
		return internalError(c, "unlike post", err)
	}

	return c.JSON(dto.MessageResponse{Message: "Like removed"})
}

func (h *LikeHandler) Count(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("post_id")
	if err != nil || postID < 1 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Post not found",
		})
	}

	count, err := h.likeService.Count(uint(postID))
	if err != nil {
		return internalError(c, "count likes", err)
	}

	return c.JSON(dto.LikeCountResponse{PostID: uint(postID), LikesCount: count})
}

func (h *LikeHandler) Check(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	postID, err := c.ParamsInt("post_id")
	if err != nil || postID < 1 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Post not found",
		})
	}

	liked, err := h.likeService.IsLiked(userID, uint(postID))
	if err != nil {
		return internalError(c, "check like", err)
	}

	return c.JSON(dto.LikeCheckResponse{Liked: liked})
}
