package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/services"
	"github.com/gofiber/fiber/v2"
)

// WebHandler renders the server-side HTML pages. It is a read-only consumer
// of the post service; all mutations go through the JSON API.
type WebHandler struct {
	postService *services.PostService
}

func NewWebHandler(postService *services.PostService) *WebHandler {
	return &WebHandler{postService: postService}
}

func (h *WebHandler) Home(c *fiber.Ctx) error {
	posts, err := h.postService.List(0, services.MaxPageSize)
	if err != nil {
		return internalError(c, "render home", err)
	}
	return c.Render("index", fiber.Map{"Posts": posts})
}

func (h *WebHandler) Post(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return c.Status(fiber.StatusNotFound).Render("post", fiber.Map{"Error": "Post not found"})
	}

	post, err := h.postService.Get(uint(postID))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).Render("post", fiber.Map{"Error": "Post not found"})
		}
		return internalError(c, "render post", err)
	}
	return c.Render("post", fiber.Map{"Post": post})
}

func (h *WebHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	posts, err := h.postService.Search(query, 0, services.MaxPageSize)
	if err != nil {
		return internalError(c, "render search", err)
	}
	return c.Render("search", fiber.Map{"Posts": posts, "Query": query})
}

func (h *WebHandler) CreatePage(c *fiber.Ctx) error {
	return c.Render("create", fiber.Map{})
}

func (h *WebHandler) EditPage(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return c.Status(fiber.StatusNotFound).Render("edit", fiber.Map{"Error": "Post not found"})
	}

	post, err := h.postService.Get(uint(postID))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).Render("edit", fiber.Map{"Error": "Post not found"})
		}
		return internalError(c, "render edit", err)
	}
	return c.Render("edit", fiber.Map{"Post": post})
}
