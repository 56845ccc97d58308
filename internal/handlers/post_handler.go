package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	postService *services.PostService
	authService *services.AuthService
}

func NewPostHandler(postService *services.PostService, authService *services.AuthService) *PostHandler {
	return &PostHandler{postService: postService, authService: authService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Title and content are required",
		})
	}

	post, err := h.postService.Create(userID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return internalError(c, "create post", err)
	}

	return c.JSON(post)
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 20)

	posts, err := h.postService.List(skip, limit)
	if err != nil {
		return internalError(c, "list posts", err)
	}
	return c.JSON(posts)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Post not found",
		})
	}

	post, err := h.postService.Get(uint(postID))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return internalError(c, "get post", err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 20)

	posts, err := h.postService.Search(query, skip, limit)
	if err != nil {
		return internalError(c, "search posts", err)
	}
	return c.JSON(posts)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Post not found",
		})
	}

	if ok, resp := h.requireMutation(c, uint(postID)); !ok {
		return resp
	}

	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	post, err := h.postService.Update(uint(postID), &req)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return internalError(c, "update post", err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Post not found",
		})
	}

	if ok, resp := h.requireMutation(c, uint(postID)); !ok {
		return resp
	}

	if err := h.postService.Delete(uint(postID)); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return internalError(c, "delete post", err)
	}

	return c.JSON(dto.MessageResponse{Message: "Post deleted"})
}

// requireMutation resolves the acting user and applies the owner-or-admin
// rule for the given post. On failure the error response has already been
// written and is returned alongside ok=false.
func (h *PostHandler) requireMutation(c *fiber.Ctx, postID uint) (ok bool, resp error) {
	userID, err := middleware.UserID(c)
	if err != nil {
		return false, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.CurrentUser(userID)
	if err != nil {
		return false, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	ownerID, err := h.postService.AuthorID(postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return false, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return false, internalError(c, "load post owner", err)
	}

	if !services.CanMutate(user, ownerID) {
		return false, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Not allowed to modify this post",
		})
	}

	return true, nil
}
