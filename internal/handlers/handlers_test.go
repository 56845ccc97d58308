package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/config"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/routes"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/security"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

// newTestApp wires the full route table onto an in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A second pooled connection would see an empty in-memory schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Favorite{},
	))

	cfg := &config.Config{
		JWTSecret: testSecret,
		JWTExpiry: time.Hour,
	}
	tokens := security.NewTokenCodec(cfg.JWTSecret, cfg.JWTExpiry)

	authService := services.NewAuthService(db, tokens)
	postService := services.NewPostService(db)
	likeService := services.NewLikeService(db)
	favoriteService := services.NewFavoriteService(db)
	userService := services.NewUserService(db)

	app := fiber.New()
	routes.Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewPostHandler(postService, authService),
		handlers.NewLikeHandler(likeService),
		handlers.NewFavoriteHandler(favoriteService),
		handlers.NewUserHandler(userService, authService),
		handlers.NewHealthHandler(),
		handlers.NewWebHandler(postService),
	)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, login, email string, admin bool) *models.User {
	t.Helper()

	hash, err := security.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		Login:        login,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title, content string) *models.Post {
	t.Helper()

	post := models.Post{AuthorID: authorID, Title: title, Content: content}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()

	token, err := security.NewTokenCodec(testSecret, time.Hour).IssueToken(userID, 0)
	require.NoError(t, err)
	return token
}

// doJSON sends a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestPublishFlow(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", map[string]string{
		"login":    "e2euser",
		"email":    "e2e@example.com",
		"password": "e2epass123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var registered struct {
		UserID uint   `json:"user_id"`
		Login  string `json:"login"`
	}
	decode(t, resp, &registered)
	assert.Equal(t, "e2euser", registered.Login)
	assert.NotZero(t, registered.UserID)

	resp = doJSON(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{
		"username": "e2euser",
		"password": "e2epass123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var session struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		UserID      uint   `json:"user_id"`
	}
	decode(t, resp, &session)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, registered.UserID, session.UserID)
	require.NotEmpty(t, session.AccessToken)

	resp = doJSON(t, app, fiber.MethodPost, "/api/posts/", session.AccessToken, map[string]string{
		"title":   "First Post",
		"content": "Hello from the flow test",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var created struct {
		ID          uint   `json:"id"`
		Title       string `json:"title"`
		AuthorLogin string `json:"author_login"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "e2euser", created.AuthorLogin)

	resp = doJSON(t, app, fiber.MethodGet, "/api/posts/"+itoa(created.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fetched struct {
		Title string `json:"title"`
	}
	decode(t, resp, &fetched)
	assert.Equal(t, "First Post", fetched.Title)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "existing", "taken@example.com", false)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", map[string]string{
		"login":    "newcomer",
		"email":    "taken@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegister_InvalidEmailMessage(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", map[string]string{
		"login":    "goodlogin",
		"email":    "not-an-email",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "invalid email format", body.Message)
}

// A backing-store failure during registration must surface as an opaque 500,
// never as a 400 carrying the driver error.
func TestRegister_StoreFailureIsOpaque(t *testing.T) {
	app, db := newTestApp(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", map[string]string{
		"login":    "unlucky",
		"email":    "unlucky@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "victim", "victim@example.com", false)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{
		"username": "victim",
		"password": "not-the-password",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "Invalid credentials", body.Message)
}

func TestMe(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "whoami", "whoami@example.com", false)

	resp := doJSON(t, app, fiber.MethodGet, "/auth/me", tokenFor(t, user.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me struct {
		ID    uint   `json:"id"`
		Login string `json:"login"`
	}
	decode(t, resp, &me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, "whoami", me.Login)
}

func TestCreatePost_RequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", "", map[string]string{
		"title": "nope", "content": "nope",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdatePost_OwnerOnly(t *testing.T) {
	app, db := newTestApp(t)
	owner := seedUser(t, db, "owner", "owner@example.com", false)
	stranger := seedUser(t, db, "stranger", "stranger@example.com", false)
	post := seedPost(t, db, owner.ID, "Original", "Body")

	newTitle := "Edited"
	resp := doJSON(t, app, fiber.MethodPut, "/api/posts/"+itoa(post.ID), tokenFor(t, stranger.ID),
		map[string]*string{"title": &newTitle})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/posts/"+itoa(post.ID), tokenFor(t, owner.ID),
		map[string]*string{"title": &newTitle})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	decode(t, resp, &updated)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "Body", updated.Content)
}

func TestDeletePost_AdminOverride(t *testing.T) {
	app, db := newTestApp(t)
	owner := seedUser(t, db, "owner", "owner@example.com", false)
	admin := seedUser(t, db, "moderator", "mod@example.com", true)
	post := seedPost(t, db, owner.ID, "Offensive", "Body")

	resp := doJSON(t, app, fiber.MethodDelete, "/api/posts/"+itoa(post.ID), tokenFor(t, admin.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/posts/"+itoa(post.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLikeEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	author := seedUser(t, db, "author", "author@example.com", false)
	fan := seedUser(t, db, "fan", "fan@example.com", false)
	post := seedPost(t, db, author.ID, "Likeable", "Body")
	token := tokenFor(t, fan.ID)

	resp := doJSON(t, app, fiber.MethodPost, "/api/likes/", token, map[string]uint{"post_id": 999})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/likes/", token, map[string]uint{"post_id": post.ID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Second like of the same post is a conflict.
	resp = doJSON(t, app, fiber.MethodPost, "/api/likes/", token, map[string]uint{"post_id": post.ID})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Count is public.
	resp = doJSON(t, app, fiber.MethodGet, "/api/likes/post/"+itoa(post.ID)+"/count", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var count struct {
		LikesCount int64 `json:"likes_count"`
	}
	decode(t, resp, &count)
	assert.EqualValues(t, 1, count.LikesCount)

	resp = doJSON(t, app, fiber.MethodGet, "/api/likes/post/"+itoa(post.ID)+"/check", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var check struct {
		Liked bool `json:"liked"`
	}
	decode(t, resp, &check)
	assert.True(t, check.Liked)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/likes/"+itoa(post.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/likes/"+itoa(post.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFavoriteEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	author := seedUser(t, db, "author", "author@example.com", false)
	reader := seedUser(t, db, "reader", "reader@example.com", false)
	post := seedPost(t, db, author.ID, "Keeper", "Body")
	token := tokenFor(t, reader.ID)

	resp := doJSON(t, app, fiber.MethodGet, "/api/favorites/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/favorites/"+itoa(post.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/favorites/check/"+itoa(post.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var check struct {
		IsFavorite bool `json:"is_favorite"`
	}
	decode(t, resp, &check)
	assert.True(t, check.IsFavorite)

	resp = doJSON(t, app, fiber.MethodGet, "/api/favorites/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var favorites []struct {
		ID          uint   `json:"id"`
		AuthorLogin string `json:"author_login"`
	}
	decode(t, resp, &favorites)
	require.Len(t, favorites, 1)
	assert.Equal(t, post.ID, favorites[0].ID)
	assert.Equal(t, "author", favorites[0].AuthorLogin)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/favorites/"+itoa(post.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/favorites/check/"+itoa(post.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &check)
	assert.False(t, check.IsFavorite)
}

func TestUserList_AdminOnly(t *testing.T) {
	app, db := newTestApp(t)
	regular := seedUser(t, db, "regular", "regular@example.com", false)
	admin := seedUser(t, db, "root", "root@example.com", true)

	resp := doJSON(t, app, fiber.MethodGet, "/api/users/", tokenFor(t, regular.ID), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/users/", tokenFor(t, admin.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var users []struct {
		Login string `json:"login"`
	}
	decode(t, resp, &users)
	assert.Len(t, users, 2)
}

func TestUserDeleteEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	regular := seedUser(t, db, "regular", "regular@example.com", false)
	admin := seedUser(t, db, "root", "root@example.com", true)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/users/"+itoa(admin.ID), tokenFor(t, regular.ID), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/users/"+itoa(admin.ID), tokenFor(t, admin.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/users/"+itoa(regular.ID), tokenFor(t, admin.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Where("id = ?", regular.ID).Count(&count)
	assert.Zero(t, count)
}

func TestUserUpdate_SelfService(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "selfedit", "self@example.com", false)
	other := seedUser(t, db, "bystander", "by@example.com", false)

	resp := doJSON(t, app, fiber.MethodPut, "/api/users/"+itoa(user.ID), tokenFor(t, other.ID),
		map[string]string{"login": "hijacked"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/users/"+itoa(user.ID), tokenFor(t, user.ID),
		map[string]string{"login": "renamed"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		Login string `json:"login"`
		Email string `json:"email"`
	}
	decode(t, resp, &updated)
	assert.Equal(t, "renamed", updated.Login)
	assert.Equal(t, "self@example.com", updated.Email)
}

func TestUserUpdate_InvalidEmailMessage(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "patcher", "patcher@example.com", false)

	resp := doJSON(t, app, fiber.MethodPut, "/api/users/"+itoa(user.ID), tokenFor(t, user.ID),
		map[string]string{"email": "not-an-email"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "invalid email format", body.Message)
}

func TestSearchEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	author := seedUser(t, db, "author", "author@example.com", false)
	seedPost(t, db, author.ID, "Go Concurrency Patterns", "channels everywhere")
	seedPost(t, db, author.ID, "Gardening", "tomatoes")

	resp := doJSON(t, app, fiber.MethodGet, "/api/posts/search/?q=concurrency", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var hits []struct {
		Title string `json:"title"`
	}
	decode(t, resp, &hits)
	require.Len(t, hits, 1)
	assert.Equal(t, "Go Concurrency Patterns", hits[0].Title)

	// Empty query returns an empty list, not everything.
	resp = doJSON(t, app, fiber.MethodGet, "/api/posts/search/?q=", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &hits)
	assert.Empty(t, hits)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
	}
	decode(t, resp, &health)
	assert.Equal(t, "ok", health.Status)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
