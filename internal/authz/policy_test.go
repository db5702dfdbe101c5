package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func authenticated(id uuid.UUID, isAdmin bool) Actor {
	return Actor{ID: id, IsAdmin: isAdmin, Authenticated: true}
}

func TestCanAccessRecipe_Read(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	published := &models.Recipe{UserID: ownerID, IsPublished: true}
	draft := &models.Recipe{UserID: ownerID, IsPublished: false}

	testCases := []struct {
		name    string
		actor   Actor
		recipe  *models.Recipe
		allowed bool
	}{
		{"anonymous_reads_published", Anonymous(), published, true},
		{"other_user_reads_published", authenticated(otherID, false), published, true},
		{"anonymous_denied_draft", Anonymous(), draft, false},
		{"other_user_denied_draft", authenticated(otherID, false), draft, false},
		{"owner_reads_draft", authenticated(ownerID, false), draft, true},
		{"admin_reads_draft", authenticated(otherID, true), draft, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanAccessRecipe(tc.actor, ActionRead, tc.recipe))
		})
	}
}

func TestCanAccessRecipe_Mutations(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	recipe := &models.Recipe{UserID: ownerID, IsPublished: true}

	for _, action := range []Action{ActionUpdate, ActionDelete} {
		assert.False(t, CanAccessRecipe(Anonymous(), action, recipe), "anonymous cannot mutate")
		assert.False(t, CanAccessRecipe(authenticated(otherID, false), action, recipe), "non-owner cannot mutate")
		assert.True(t, CanAccessRecipe(authenticated(ownerID, false), action, recipe), "owner can mutate")
		assert.True(t, CanAccessRecipe(authenticated(otherID, true), action, recipe), "admin can mutate")
	}
}

func TestCanAccessRecipe_Create(t *testing.T) {
	assert.False(t, CanAccessRecipe(Anonymous(), ActionCreate, &models.Recipe{}))
	assert.True(t, CanAccessRecipe(authenticated(uuid.New(), false), ActionCreate, &models.Recipe{}))
}

func TestCanAccessIngredients_FollowsRecipe(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	draft := &models.Recipe{UserID: ownerID, IsPublished: false}
	published := &models.Recipe{UserID: ownerID, IsPublished: true}

	// Reads follow recipe visibility.
	assert.True(t, CanAccessIngredients(Anonymous(), ActionRead, published))
	assert.False(t, CanAccessIngredients(Anonymous(), ActionRead, draft))
	assert.True(t, CanAccessIngredients(authenticated(ownerID, false), ActionRead, draft))

	// Mutations follow recipe ownership, even on published recipes.
	assert.False(t, CanAccessIngredients(authenticated(otherID, false), ActionCreate, published))
	assert.True(t, CanAccessIngredients(authenticated(ownerID, false), ActionCreate, published))
	assert.True(t, CanAccessIngredients(authenticated(otherID, true), ActionDelete, published))
}

func TestCanAccessCategory(t *testing.T) {
	userID := uuid.New()

	assert.True(t, CanAccessCategory(Anonymous(), ActionRead))
	assert.True(t, CanAccessCategory(authenticated(userID, false), ActionRead))

	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		assert.False(t, CanAccessCategory(Anonymous(), action))
		assert.False(t, CanAccessCategory(authenticated(userID, false), action), "regular users cannot mutate categories")
		assert.True(t, CanAccessCategory(authenticated(userID, true), action))
	}
}

func TestCanAccessRating_AuthorOnly(t *testing.T) {
	authorID := uuid.New()
	otherID := uuid.New()
	rating := &models.Rating{UserID: authorID}

	assert.True(t, CanAccessRating(Anonymous(), ActionRead, rating))
	assert.False(t, CanAccessRating(Anonymous(), ActionCreate, rating))
	assert.True(t, CanAccessRating(authenticated(otherID, false), ActionCreate, rating))

	for _, action := range []Action{ActionUpdate, ActionDelete} {
		assert.True(t, CanAccessRating(authenticated(authorID, false), action, rating))
		assert.False(t, CanAccessRating(authenticated(otherID, false), action, rating))
		// No admin override on ratings.
		assert.False(t, CanAccessRating(authenticated(otherID, true), action, rating))
	}
}
