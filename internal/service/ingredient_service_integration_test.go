package service_test

import (
	"fmt"
	"testing"

	"github.com/lezzetli/recipe-api/internal/authz"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/repository"
	"github.com/lezzetli/recipe-api/internal/service"
	"github.com/lezzetli/recipe-api/internal/testutil"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type IngredientServiceIntegrationTestSuite struct {
	suite.Suite
	testDB            *testutil.TestDatabase
	ingredientService *service.IngredientService

	owner    *models.User
	other    *models.User
	category *models.Category
	recipe   *models.Recipe
}

func (s *IngredientServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())

	ingredientRepo := repository.NewIngredientRepository(s.testDB.DB)
	recipeRepo := repository.NewRecipeRepository(s.testDB.DB)
	s.ingredientService = service.NewIngredientService(ingredientRepo, recipeRepo)
}

func (s *IngredientServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *IngredientServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	s.owner = testutil.CreateTestUser(s.T(), s.testDB.DB, "chef", "chef@example.com", "Pass12345", false)
	s.other = testutil.CreateTestUser(s.T(), s.testDB.DB, "visitor", "visitor@example.com", "Pass12345", false)
	s.category = testutil.CreateTestCategory(s.T(), s.testDB.DB, "Desserts")
	s.recipe = testutil.CreateTestRecipe(s.T(), s.testDB.DB, "Chocolate Cake", s.owner.ID, s.category.ID, true)
}

func (s *IngredientServiceIntegrationTestSuite) TestAddIngredient() {
	ingredient, err := s.ingredientService.AddIngredient(testutil.ActorFor(s.owner), s.recipe.ID, service.IngredientInput{
		Name:     "Flour",
		Quantity: "500",
		Unit:     "g",
	})

	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), ingredient.ID)
	assert.Equal(s.T(), "Flour", ingredient.Name)
	assert.Equal(s.T(), 0, ingredient.Order)
}

func (s *IngredientServiceIntegrationTestSuite) TestAddIngredientOwnerOnly() {
	ingredient, err := s.ingredientService.AddIngredient(testutil.ActorFor(s.other), s.recipe.ID, service.IngredientInput{
		Name: "Sabotage",
	})

	assert.ErrorIs(s.T(), err, service.ErrForbidden)
	assert.Nil(s.T(), ingredient)
}

func (s *IngredientServiceIntegrationTestSuite) TestBulkAddDefaultsOrderToPosition() {
	inputs := []service.IngredientInput{
		{Name: "Flour"},
		{Name: "Sugar"},
		{Name: "Cocoa"},
	}

	ingredients, err := s.ingredientService.BulkAddIngredients(testutil.ActorFor(s.owner), s.recipe.ID, inputs)

	assert.NoError(s.T(), err)
	assert.Len(s.T(), ingredients, 3)
	for i, ingredient := range ingredients {
		assert.Equal(s.T(), i, ingredient.Order, "Submission position becomes the default order")
	}
}

func (s *IngredientServiceIntegrationTestSuite) TestBulkAddExplicitOrderKept() {
	five := 5
	inputs := []service.IngredientInput{
		{Name: "Flour", Order: &five},
		{Name: "Sugar"},
	}

	ingredients, err := s.ingredientService.BulkAddIngredients(testutil.ActorFor(s.owner), s.recipe.ID, inputs)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 5, ingredients[0].Order)
	assert.Equal(s.T(), 1, ingredients[1].Order)
}

func (s *IngredientServiceIntegrationTestSuite) TestBulkAddAtLimit() {
	inputs := make([]service.IngredientInput, service.MaxBulkIngredients)
	for i := range inputs {
		inputs[i] = service.IngredientInput{Name: fmt.Sprintf("Ingredient %d", i+1)}
	}

	ingredients, err := s.ingredientService.BulkAddIngredients(testutil.ActorFor(s.owner), s.recipe.ID, inputs)

	assert.NoError(s.T(), err, "Exactly 50 items is allowed")
	assert.Len(s.T(), ingredients, service.MaxBulkIngredients)
}

func (s *IngredientServiceIntegrationTestSuite) TestBulkAddOverLimit() {
	inputs := make([]service.IngredientInput, service.MaxBulkIngredients+1)
	for i := range inputs {
		inputs[i] = service.IngredientInput{Name: fmt.Sprintf("Ingredient %d", i+1)}
	}

	ingredients, err := s.ingredientService.BulkAddIngredients(testutil.ActorFor(s.owner), s.recipe.ID, inputs)

	assert.ErrorIs(s.T(), err, service.ErrBulkLimitExceeded)
	assert.Nil(s.T(), ingredients)

	// Nothing was written.
	var count int64
	s.testDB.DB.Model(&models.Ingredient{}).Where("recipe_id = ?", s.recipe.ID).Count(&count)
	assert.Equal(s.T(), int64(0), count)
}

func (s *IngredientServiceIntegrationTestSuite) TestListOrderedBySortOrder() {
	testutil.CreateTestIngredient(s.T(), s.testDB.DB, s.recipe.ID, "Cocoa", 2)
	testutil.CreateTestIngredient(s.T(), s.testDB.DB, s.recipe.ID, "Flour", 0)
	testutil.CreateTestIngredient(s.T(), s.testDB.DB, s.recipe.ID, "Sugar", 1)

	_, ingredients, err := s.ingredientService.ListIngredients(authz.Anonymous(), s.recipe.ID)

	assert.NoError(s.T(), err)
	assert.Len(s.T(), ingredients, 3)
	assert.Equal(s.T(), "Flour", ingredients[0].Name)
	assert.Equal(s.T(), "Sugar", ingredients[1].Name)
	assert.Equal(s.T(), "Cocoa", ingredients[2].Name)
}

func (s *IngredientServiceIntegrationTestSuite) TestListDraftFollowsRecipeVisibility() {
	draft := testutil.CreateTestRecipe(s.T(), s.testDB.DB, "Secret Sauce", s.owner.ID, s.category.ID, false)
	testutil.CreateTestIngredient(s.T(), s.testDB.DB, draft.ID, "Mystery", 0)

	_, _, err := s.ingredientService.ListIngredients(authz.Anonymous(), draft.ID)
	assert.ErrorIs(s.T(), err, service.ErrForbidden)

	_, ingredients, err := s.ingredientService.ListIngredients(testutil.ActorFor(s.owner), draft.ID)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), ingredients, 1)
}

func (s *IngredientServiceIntegrationTestSuite) TestUpdateIngredient() {
	ingredient := testutil.CreateTestIngredient(s.T(), s.testDB.DB, s.recipe.ID, "Flour", 0)
	quantity := "750"

	updated, err := s.ingredientService.UpdateIngredient(testutil.ActorFor(s.owner), s.recipe.ID, ingredient.ID, service.UpdateIngredientInput{
		Quantity: &quantity,
	})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "750", updated.Quantity)
	assert.Equal(s.T(), "Flour", updated.Name, "Absent fields stay untouched")
}

func (s *IngredientServiceIntegrationTestSuite) TestBulkUpdateSkipsForeignIDs() {
	mine := testutil.CreateTestIngredient(s.T(), s.testDB.DB, s.recipe.ID, "Flour", 0)

	otherRecipe := testutil.CreateTestRecipe(s.T(), s.testDB.DB, "Lemon Tart", s.other.ID, s.category.ID, true)
	foreign := testutil.CreateTestIngredient(s.T(), s.testDB.DB, otherRecipe.ID, "Lemons", 0)

	name := "Bread Flour"
	items := []service.BulkUpdateItem{
		{ID: mine.ID, UpdateIngredientInput: service.UpdateIngredientInput{Name: &name}},
		{ID: foreign.ID, UpdateIngredientInput: service.UpdateIngredientInput{Name: &name}},
	}

	updated, err := s.ingredientService.BulkUpdateIngredients(testutil.ActorFor(s.owner), s.recipe.ID, items)

	assert.NoError(s.T(), err)
	assert.Len(s.T(), updated, 1, "Items of other recipes are skipped, not errors")
	assert.Equal(s.T(), "Bread Flour", updated[0].Name)

	// The foreign ingredient is untouched.
	var check models.Ingredient
	s.testDB.DB.First(&check, foreign.ID)
	assert.Equal(s.T(), "Lemons", check.Name)
}

func (s *IngredientServiceIntegrationTestSuite) TestDeleteIngredient() {
	ingredient := testutil.CreateTestIngredient(s.T(), s.testDB.DB, s.recipe.ID, "Flour", 0)

	err := s.ingredientService.DeleteIngredient(testutil.ActorFor(s.other), s.recipe.ID, ingredient.ID)
	assert.ErrorIs(s.T(), err, service.ErrForbidden)

	err = s.ingredientService.DeleteIngredient(testutil.ActorFor(s.owner), s.recipe.ID, ingredient.ID)
	assert.NoError(s.T(), err)

	err = s.ingredientService.DeleteIngredient(testutil.ActorFor(s.owner), s.recipe.ID, ingredient.ID)
	assert.ErrorIs(s.T(), err, service.ErrIngredientNotFound)
}

func (s *IngredientServiceIntegrationTestSuite) TestGetIngredientScopedToRecipe() {
	otherRecipe := testutil.CreateTestRecipe(s.T(), s.testDB.DB, "Lemon Tart", s.owner.ID, s.category.ID, true)
	foreign := testutil.CreateTestIngredient(s.T(), s.testDB.DB, otherRecipe.ID, "Lemons", 0)

	// Looking it up through the wrong recipe is a not-found, not a leak.
	ingredient, err := s.ingredientService.GetIngredient(authz.Anonymous(), s.recipe.ID, foreign.ID)
	assert.ErrorIs(s.T(), err, service.ErrIngredientNotFound)
	assert.Nil(s.T(), ingredient)
}

func TestIngredientServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IngredientServiceIntegrationTestSuite))
}
