package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) Favorite(c *fiber.Ctx) error {
	userID, postID, resp := h.identify(c)
	if resp != nil {
		return resp
	}

	if err := h.favoriteService.Favorite(userID, postID); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		case errors.Is(err, services.ErrAlreadyFavorited):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Post already in favorites",
			})
		}
		return internalError(c, "favorite post", err)
	}

	return c.JSON(dto.MessageResponse{Message: "Post added to favorites"})
}

func (h *FavoriteHandler) Unfavorite(c *fiber.Ctx) error {
	userID, postID, resp := h.identify(c)
	if resp != nil {
		return resp
	}

	if err := h.favoriteService.Unfavorite(userID, postID); err != nil {
		if errors.Is(err, services.ErrFavoriteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found in favorites",
			})
		}
		return internalError(c, "unfavorite post", err)
	}

	return c.JSON(dto.MessageResponse{Message: "Post removed from favorites"})
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	posts, err := h.favoriteService.ListByUser(userID)
	if err != nil {
		return internalError(c, "list favorites", err)
	}
	return c.JSON(posts)
}

func (h *FavoriteHandler) Check(c *fiber.Ctx) error {
	userID, postID, resp := h.identify(c)
	if resp != nil {
		return resp
	}

	isFavorite, err := h.favoriteService.IsFavorite(userID, postID)
	if err != nil {
		return internalError(c, "check favorite", err)
	}
	return c.JSON(dto.FavoriteCheckResponse{IsFavorite: isFavorite})
}

// identify pulls the acting user and the post_id path param; a non-nil
// response means the failure has already been written.
func (h *FavoriteHandler) identify(c *fiber.Ctx) (userID, postID uint, resp error) {
	uid, err := middleware.UserID(c)
	if err != nil {
		return 0, 0, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	pid, err := c.ParamsInt("post_id")
	if err != nil || pid < 1 {
		return 0, 0, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Post not found",
		})
	}

	return uid, uint(pid), nil
}
