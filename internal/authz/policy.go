// Package authz holds the single authorization decision point for the API.
// Every handler that gates a resource goes through these functions instead of
// repeating ownership checks inline, so the rules cannot drift per endpoint.
package authz

import (
	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/models"
)

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Actor is the resolved caller identity. The zero value is anonymous.
type Actor struct {
	ID            uuid.UUID
	IsAdmin       bool
	Authenticated bool
}

// Anonymous is the actor used when no (or no valid) token accompanies a request.
func Anonymous() Actor {
	return Actor{}
}

// CanAccessRecipe decides recipe access. Published recipes are readable by
// anyone; unpublished recipes and all mutations require the owner or an admin.
// Create only requires authentication (the caller becomes the owner).
func CanAccessRecipe(actor Actor, action Action, recipe *models.Recipe) bool {
	if action == ActionRead {
		if recipe.IsPublished {
			return true
		}
		return actor.Authenticated && (actor.IsAdmin || actor.ID == recipe.UserID)
	}

	if !actor.Authenticated {
		return false
	}
	if action == ActionCreate {
		return true
	}
	return actor.IsAdmin || actor.ID == recipe.UserID
}

// CanAccessIngredients follows the parent recipe: ingredient mutations are
// gated by recipe ownership, reads by recipe visibility.
func CanAccessIngredients(actor Actor, action Action, recipe *models.Recipe) bool {
	if action == ActionRead {
		return CanAccessRecipe(actor, ActionRead, recipe)
	}
	return actor.Authenticated && (actor.IsAdmin || actor.ID == recipe.UserID)
}

// CanAccessCategory decides category access: reads are public, every
// mutation is admin-only.
func CanAccessCategory(actor Actor, action Action) bool {
	if action == ActionRead {
		return true
	}
	return actor.Authenticated && actor.IsAdmin
}

// CanAccessRating decides rating access. Reads are public and creates need
// only authentication (the one-per-user invariant is enforced at the store).
// Update and delete require exact authorship; admins get no override here.
func CanAccessRating(actor Actor, action Action, rating *models.Rating) bool {
	switch action {
	case ActionRead:
		return true
	case ActionCreate:
		return actor.Authenticated
	default:
		return actor.Authenticated && actor.ID == rating.UserID
	}
}
