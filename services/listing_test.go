package services

import (
	"context"
	"testing"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFoldsMinimumDailyPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	ctx := context.Background()

	space := createTestSpace(t, db, "Priced Space", 1)
	createTestService(t, db, space.ID, "Desk Pass", 12)
	createTestService(t, db, space.ID, "Locker", 9)
	createTestService(t, db, space.ID, "Meeting Room", 15)

	createTestSpace(t, db, "Bare Space", 1)

	spaces, err := svc.List(ctx, ListingFilter{})
	require.NoError(t, err)
	require.Len(t, spaces, 2)

	byName := map[string]EnrichedSpace{}
	for _, s := range spaces {
		byName[s.Name] = s
	}

	require.NotNil(t, byName["Priced Space"].MinDailyPrice)
	assert.Equal(t, 9.0, *byName["Priced Space"].MinDailyPrice)

	// No services means no minimum price at all, not a zero one.
	assert.Nil(t, byName["Bare Space"].MinDailyPrice)

	// A bounded price filter excludes the space with no price.
	maxPrice := 20.0
	filtered, err := svc.List(ctx, ListingFilter{MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, space.ID, filtered[0].ID)
}

func TestListFoldsAverageRating(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "rater@test.com")
	space := createTestSpace(t, db, "Rated Space", 1)
	for _, rate := range []float64{3, 4, 5} {
		require.NoError(t, db.Create(&models.Rating{SpaceID: space.ID, UserID: user.ID, Rate: rate}).Error)
	}
	createTestSpace(t, db, "Unrated Space", 1)

	enriched, err := svc.GetOne(ctx, space.ID)
	require.NoError(t, err)
	require.NotNil(t, enriched.AverageRating)
	assert.Equal(t, 4.0, *enriched.AverageRating)
	assert.Equal(t, 3, enriched.RatingCount)

	minRating := 3.5
	filtered, err := svc.List(ctx, ListingFilter{MinRating: &minRating})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, space.ID, filtered[0].ID)
}

func TestGetOneMissingSpace(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)

	_, err := svc.GetOne(context.Background(), 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSearchUnionsNameAndCityWithoutDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	ctx := context.Background()

	city := models.City{Name: "Springfield"}
	require.NoError(t, db.Create(&city).Error)
	other := models.City{Name: "Shelbyville"}
	require.NoError(t, db.Create(&other).Error)

	// Matches both by name and by city; must appear exactly once.
	both := createTestSpace(t, db, "Springfield Hub", city.ID)
	inCity := createTestSpace(t, db, "Quiet Corner", city.ID)
	byNameOnly := createTestSpace(t, db, "Springfield Annex", other.ID)
	createTestSpace(t, db, "Elsewhere", other.ID)

	results, err := svc.Search(ctx, "springfield")
	require.NoError(t, err)
	require.Len(t, results, 3)

	seen := map[uint]int{}
	for _, r := range results {
		seen[r.ID]++
	}
	assert.Equal(t, 1, seen[both.ID])
	assert.Equal(t, 1, seen[inCity.ID])
	assert.Equal(t, 1, seen[byNameOnly.ID])
}

func TestListFiltersByAmenity(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	ctx := context.Background()

	withWifi := createTestSpace(t, db, "Wifi Space", 1)
	require.NoError(t, db.Model(withWifi).UpdateColumn("amenities", []byte("[1,3]")).Error)
	createTestSpace(t, db, "Offline Space", 1)

	spaces, err := svc.List(ctx, ListingFilter{AmenityID: 3})
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, withWifi.ID, spaces[0].ID)
}

func TestListPaginatesAfterFolding(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three", "Four", "Five"} {
		createTestSpace(t, db, name, 1)
	}

	page1, err := svc.List(ctx, ListingFilter{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page3, err := svc.List(ctx, ListingFilter{Page: 3, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	empty, err := svc.List(ctx, ListingFilter{Page: 4, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTopRatedOrdersByRatingSum(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "top@test.com")
	lower := createTestSpace(t, db, "Lower Space", 1)
	higher := createTestSpace(t, db, "Higher Space", 1)

	// Two middling ratings outrank one perfect score on the sum.
	require.NoError(t, db.Create(&models.Rating{SpaceID: lower.ID, UserID: user.ID, Rate: 5}).Error)
	require.NoError(t, db.Create(&models.Rating{SpaceID: higher.ID, UserID: user.ID, Rate: 4}).Error)
	require.NoError(t, db.Create(&models.Rating{SpaceID: higher.ID, UserID: user.ID, Rate: 3}).Error)

	top, err := svc.TopRated(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, higher.ID, top[0].ID)
	assert.Equal(t, lower.ID, top[1].ID)
}
