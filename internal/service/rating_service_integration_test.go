package service_test

import (
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

type RatingServiceIntegrationTestSuite struct {
	suite.Suite
	testDB        *testutil.TestDatabase
	ratingService *service.RatingService

	owner    *models.User
	rater    *models.User
	category *models.Category
	recipe   *models.Recipe
}

func (s *RatingServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())

	ratingRepo := repository.NewRatingRepository(s.testDB.DB)
	recipeRepo := repository.NewRecipeRepository(s.testDB.DB)
	userRepo := repository.NewUserRepository(s.testDB.DB)
	s.ratingService = service.NewRatingService(ratingRepo, recipeRepo, userRepo)
}

func (s *RatingServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *RatingServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	s.owner = testutil.CreateTestUser(s.T(), s.testDB.DB, "chef", "chef@example.com", "Pass12345", false)
	s.rater = testutil.CreateTestUser(s.T(), s.testDB.DB, "foodie", "foodie@example.com", "Pass12345", false)
	s.category = testutil.CreateTestCategory(s.T(), s.testDB.DB, "Desserts")
	s.recipe = testutil.CreateTestRecipe(s.T(), s.testDB.DB, "Chocolate Cake", s.owner.ID, s.category.ID, true)
}

func (s *RatingServiceIntegrationTestSuite) TestAddRating() {
	rating, err := s.ratingService.AddRating(testutil.ActorFor(s.rater), s.recipe.ID, 4, "Lovely texture")

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), rating)
	assert.Equal(s.T(), 4, rating.Score)
	assert.Equal(s.T(), s.rater.ID, rating.UserID)
	assert.NotZero(s.T(), rating.ID)
}

func (s *RatingServiceIntegrationTestSuite) TestAddRatingTwiceRejected() {
	_, err := s.ratingService.AddRating(testutil.ActorFor(s.rater), s.recipe.ID, 4, "")
	assert.NoError(s.T(), err)

	rating, err := s.ratingService.AddRating(testutil.ActorFor(s.rater), s.recipe.ID, 5, "changed my mind")
	assert.ErrorIs(s.T(), err, service.ErrAlreadyRated)
	assert.Nil(s.T(), rating)

	// The first rating is untouched.
	var count int64
	s.testDB.DB.Model(&models.Rating{}).Where("recipe_id = ?", s.recipe.ID).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *RatingServiceIntegrationTestSuite) TestAddRatingInvalidScore() {
	for _, score := range []int{0, 6, -1, 100} {
		rating, err := s.ratingService.AddRating(testutil.ActorFor(s.rater), s.recipe.ID, score, "")
		assert.ErrorIs(s.T(), err, service.ErrInvalidScore)
		assert.Nil(s.T(), rating)
	}
}

func (s *RatingServiceIntegrationTestSuite) TestAddRatingAnonymousDenied() {
	rating, err := s.ratingService.AddRating(authz.Anonymous(), s.recipe.ID, 4, "")
	assert.ErrorIs(s.T(), err, service.ErrForbidden)
	assert.Nil(s.T(), rating)
}

func (s *RatingServiceIntegrationTestSuite) TestAddRatingMissingRecipe() {
	rating, err := s.ratingService.AddRating(testutil.ActorFor(s.rater), 99999, 4, "")
	assert.ErrorIs(s.T(), err, service.ErrRecipeNotFound)
	assert.Nil(s.T(), rating)
}

func (s *RatingServiceIntegrationTestSuite) TestUpdateRatingAuthorOnly() {
	rating := testutil.CreateTestRating(s.T(), s.testDB.DB, s.rater.ID, s.recipe.ID, 3)
	newScore := 5

	// Someone else, even the recipe owner, cannot touch it.
	updated, err := s.ratingService.UpdateRating(testutil.ActorFor(s.owner), s.recipe.ID, rating.ID, &newScore, nil)
	assert.ErrorIs(s.T(), err, service.ErrForbidden)
	assert.Nil(s.T(), updated)

	// Admins get no override either.
	admin := testutil.CreateTestUser(s.T(), s.testDB.DB, "admin", "admin@example.com", "Pass12345", true)
	updated, err = s.ratingService.UpdateRating(testutil.ActorFor(admin), s.recipe.ID, rating.ID, &newScore, nil)
	assert.ErrorIs(s.T(), err, service.ErrForbidden)
	assert.Nil(s.T(), updated)

	// The author can.
	updated, err = s.ratingService.UpdateRating(testutil.ActorFor(s.rater), s.recipe.ID, rating.ID, &newScore, nil)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 5, updated.Score)
}

func (s *RatingServiceIntegrationTestSuite) TestUpdateRatingRevalidatesScore() {
	rating := testutil.CreateTestRating(s.T(), s.testDB.DB, s.rater.ID, s.recipe.ID, 3)
	badScore := 9

	updated, err := s.ratingService.UpdateRating(testutil.ActorFor(s.rater), s.recipe.ID, rating.ID, &badScore, nil)
	assert.ErrorIs(s.T(), err, service.ErrInvalidScore)
	assert.Nil(s.T(), updated)
}

func (s *RatingServiceIntegrationTestSuite) TestDeleteRatingAuthorOnly() {
	rating := testutil.CreateTestRating(s.T(), s.testDB.DB, s.rater.ID, s.recipe.ID, 3)

	err := s.ratingService.DeleteRating(testutil.ActorFor(s.owner), s.recipe.ID, rating.ID)
	assert.ErrorIs(s.T(), err, service.ErrForbidden)

	err = s.ratingService.DeleteRating(testutil.ActorFor(s.rater), s.recipe.ID, rating.ID)
	assert.NoError(s.T(), err)

	var count int64
	s.testDB.DB.Model(&models.Rating{}).Where("recipe_id = ?", s.recipe.ID).Count(&count)
	assert.Equal(s.T(), int64(0), count)
}

func (s *RatingServiceIntegrationTestSuite) TestDeleteThenRateAgain() {
	rating := testutil.CreateTestRating(s.T(), s.testDB.DB, s.rater.ID, s.recipe.ID, 3)

	err := s.ratingService.DeleteRating(testutil.ActorFor(s.rater), s.recipe.ID, rating.ID)
	assert.NoError(s.T(), err)

	// After deleting their rating the user may rate again.
	newRating, err := s.ratingService.AddRating(testutil.ActorFor(s.rater), s.recipe.ID, 5, "")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 5, newRating.Score)
}

func (s *RatingServiceIntegrationTestSuite) TestStats() {
	users := make([]*models.User, 4)
	for i, name := range []string{"u1", "u2", "u3", "u4"} {
		users[i] = testutil.CreateTestUser(s.T(), s.testDB.DB, name, name+"@example.com", "Pass12345", false)
	}
	for i, score := range []int{5, 4, 4, 2} {
		testutil.CreateTestRating(s.T(), s.testDB.DB, users[i].ID, s.recipe.ID, score)
	}

	stats, err := s.ratingService.Stats(s.recipe.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), s.recipe.ID, stats.RecipeID)
	assert.Equal(s.T(), "Chocolate Cake", stats.RecipeTitle)
	assert.Equal(s.T(), 4, stats.TotalRatings)

	// (5+4+4+2)/4 = 3.75
	assert.NotNil(s.T(), stats.Average)
	assert.Equal(s.T(), 3.75, *stats.Average)

	assert.Equal(s.T(), map[string]int{
		"1_star":  0,
		"2_stars": 1,
		"3_stars": 0,
		"4_stars": 2,
		"5_stars": 1,
	}, stats.Distribution)

	assert.Equal(s.T(), 25.0, stats.Percentages["2_stars"])
	assert.Equal(s.T(), 50.0, stats.Percentages["4_stars"])
	assert.Equal(s.T(), 25.0, stats.Percentages["5_stars"])
	assert.Equal(s.T(), 0.0, stats.Percentages["1_star"])
}

func (s *RatingServiceIntegrationTestSuite) TestStatsRounding() {
	// Three ratings of 5, 4, 4 → 13/3 = 4.333... → 4.33, percentages 33.3/66.7.
	users := make([]*models.User, 3)
	for i, name := range []string{"r1", "r2", "r3"} {
		users[i] = testutil.CreateTestUser(s.T(), s.testDB.DB, name, name+"@example.com", "Pass12345", false)
	}
	for i, score := range []int{5, 4, 4} {
		testutil.CreateTestRating(s.T(), s.testDB.DB, users[i].ID, s.recipe.ID, score)
	}

	stats, err := s.ratingService.Stats(s.recipe.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 4.33, *stats.Average)
	assert.Equal(s.T(), 66.7, stats.Percentages["4_stars"])
	assert.Equal(s.T(), 33.3, stats.Percentages["5_stars"])
}

func (s *RatingServiceIntegrationTestSuite) TestStatsEmpty() {
	stats, err := s.ratingService.Stats(s.recipe.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 0, stats.TotalRatings)
	assert.Nil(s.T(), stats.Average, "Average must be nil, not zero, with no ratings")
	assert.Equal(s.T(), 0, stats.Distribution["1_star"])
	assert.Equal(s.T(), 0, stats.Distribution["5_stars"])
	assert.Nil(s.T(), stats.Percentages)
}

func (s *RatingServiceIntegrationTestSuite) TestListByUser() {
	other := testutil.CreateTestRecipe(s.T(), s.testDB.DB, "Lemon Tart", s.owner.ID, s.category.ID, true)
	testutil.CreateTestRating(s.T(), s.testDB.DB, s.rater.ID, s.recipe.ID, 4)
	testutil.CreateTestRating(s.T(), s.testDB.DB, s.rater.ID, other.ID, 5)
	testutil.CreateTestRating(s.T(), s.testDB.DB, s.owner.ID, other.ID, 3)

	user, ratings, total, err := s.ratingService.ListByUser(s.rater.ID, 1, 10)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), s.rater.ID, user.ID)
	assert.Equal(s.T(), int64(2), total)
	assert.Len(s.T(), ratings, 2)
}

func TestRatingServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RatingServiceIntegrationTestSuite))
}
