package services

import "github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"

// CanMutate is the owner-or-admin rule: an actor may modify a resource iff
// they own it or are an admin. Pure decision over already-loaded data.
func CanMutate(actor *models.User, ownerID uint) bool {
	return actor.ID == ownerID || actor.IsAdmin
}
