package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanMutate(t *testing.T) {
	owner := &models.User{ID: 1}
	stranger := &models.User{ID: 2}
	admin := &models.User{ID: 3, IsAdmin: true}

	assert.True(t, CanMutate(owner, 1))
	assert.False(t, CanMutate(stranger, 1))
	assert.True(t, CanMutate(admin, 1))
}

func TestUserUpdate_PartialPatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := seedUser(t, db, "old_login", "old@example.com", false)

	newLogin := "new_login"
	updated, err := svc.Update(user.ID, &dto.UpdateUserRequest{Login: &newLogin})
	require.NoError(t, err)
	assert.Equal(t, "new_login", updated.Login)
	assert.Equal(t, "old@example.com", updated.Email)
}

func TestUserUpdate_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	seedUser(t, db, "first", "taken@example.com", false)
	user := seedUser(t, db, "second", "mine@example.com", false)

	taken := "taken@example.com"
	_, err := svc.Update(user.ID, &dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserUpdate_RehashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := seedUser(t, db, "pw_user", "pw@example.com", false)
	oldHash := user.PasswordHash

	newPassword := "brand-new-pass"
	updated, err := svc.Update(user.ID, &dto.UpdateUserRequest{Password: &newPassword})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)
	assert.NotEqual(t, newPassword, updated.PasswordHash)
}

func TestUserDelete_RequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	target := seedUser(t, db, "target", "target@example.com", false)
	regular := seedUser(t, db, "regular", "regular@example.com", false)

	assert.ErrorIs(t, svc.Delete(target.ID, regular.ID), ErrForbidden)
}

func TestUserDelete_SelfDeleteForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, "the_admin", "admin@example.com", true)

	assert.ErrorIs(t, svc.Delete(admin.ID, admin.ID), ErrSelfDelete)

	// The account must still exist.
	var count int64
	db.Model(&models.User{}).Where("id = ?", admin.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, "the_admin", "admin@example.com", true)

	assert.ErrorIs(t, svc.Delete(999, admin.ID), ErrUserNotFound)
}

func TestUserDelete_CascadesAuthoredContent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, "the_admin", "admin@example.com", true)
	target := seedUser(t, db, "target", "target@example.com", false)
	bystander := seedUser(t, db, "bystander", "by@example.com", false)

	targetPost := seedPost(t, db, target.ID, "Doomed", "Body")
	otherPost := seedPost(t, db, bystander.ID, "Safe", "Body")

	// Likes/favorites both on the target's post and by the target elsewhere.
	require.NoError(t, db.Create(&models.Like{UserID: bystander.ID, PostID: targetPost.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: target.ID, PostID: otherPost.ID}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: bystander.ID, PostID: targetPost.ID}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: target.ID, PostID: otherPost.ID}).Error)

	require.NoError(t, svc.Delete(target.ID, admin.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", target.ID).Count(&count)
	assert.Zero(t, count, "user row removed")

	db.Model(&models.Post{}).Where("author_id = ?", target.ID).Count(&count)
	assert.Zero(t, count, "authored posts removed")

	db.Model(&models.Like{}).Where("post_id = ? OR user_id = ?", targetPost.ID, target.ID).Count(&count)
	assert.Zero(t, count, "likes on and by the user removed")

	db.Model(&models.Favorite{}).Where("post_id = ? OR user_id = ?", targetPost.ID, target.ID).Count(&count)
	assert.Zero(t, count, "favorites on and by the user removed")

	// The bystander's post is untouched.
	db.Model(&models.Post{}).Where("id = ?", otherPost.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
