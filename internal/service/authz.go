// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"inkwell/internal/models"
)

// Authorization rules are pure functions over (actor, resource): they return
// nil when the action is allowed and a Forbidden error otherwise. Callers map
// the error to a transport response; a violation is never silently ignored.

// CanCreatePost allows authors and admins to publish.
func CanCreatePost(actor *models.User) error {
	if actor.CanPublish() {
		return nil
	}
	return models.NewForbiddenError("Only authors and admins can create posts")
}

// CanModifyPost allows the post owner and admins to update or delete a post.
// Owner-or-admin (rather than admin-only) deletion is a deliberate product
// decision.
func CanModifyPost(actor *models.User, post *models.Post) error {
	if actor.ID == post.UserID || actor.IsAdmin() {
		return nil
	}
	return models.NewForbiddenError("You can only modify your own posts")
}
