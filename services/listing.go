package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ListingService composes the public space listings: filter the candidate
// spaces, join their satellite collections, fold them into derived fields
// (minimum daily price, average rating) and only then apply the filters
// that depend on folded values. Folding before filtering matters: a price
// predicate pushed into the join would drop multi-valued rows incorrectly.
type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

// EnrichedSpace is a space with its joined collections and derived fields.
// MinDailyPrice and AverageRating are nil when the space has no services or
// no ratings; nil never serializes as zero.
type EnrichedSpace struct {
	models.Space
	MinDailyPrice *float64 `json:"minDailyPrice,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	RatingCount   int      `json:"ratingCount"`
}

type ListingFilter struct {
	Status     string
	CityID     uint
	CategoryID uint
	AmenityID  uint
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	MaxRating  *float64
	Page       int
	PerPage    int
}

// List returns enriched spaces ordered by creation time descending. The
// ordering ties on id so pagination is stable.
func (s *ListingService) List(ctx context.Context, filter ListingFilter) ([]EnrichedSpace, error) {
	q := s.withJoins(s.DB.WithContext(ctx).Model(&models.Space{}))

	// Scalar pre-join filters. Everything that depends on a folded value
	// waits until after enrichment.
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CityID > 0 {
		q = q.Where("city_id = ?", filter.CityID)
	}

	var spaces []models.Space
	if err := q.Order("created_at DESC").Order("id DESC").Find(&spaces).Error; err != nil {
		return nil, err
	}

	enriched := make([]EnrichedSpace, 0, len(spaces))
	for i := range spaces {
		e := enrich(&spaces[i])
		if !matchesFolded(&e, filter) {
			continue
		}
		enriched = append(enriched, e)
	}

	return paginate(enriched, filter.Page, filter.PerPage), nil
}

// GetOne returns a single enriched space. Absent satellite rows degrade to
// empty fields; only a missing space itself is an error.
func (s *ListingService) GetOne(ctx context.Context, spaceID uint) (*EnrichedSpace, error) {
	var space models.Space
	err := s.withJoins(s.DB.WithContext(ctx)).First(&space, spaceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	e := enrich(&space)
	return &e, nil
}

// Search matches spaces whose name contains the text or whose city's name
// does, case-insensitively. The two result sets are unioned with
// deduplication by space id before enrichment.
func (s *ListingService) Search(ctx context.Context, text string) ([]EnrichedSpace, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(text)) + "%"

	var byName []models.Space
	if err := s.withJoins(s.DB.WithContext(ctx).Model(&models.Space{})).
		Where("LOWER(name) LIKE ?", pattern).
		Find(&byName).Error; err != nil {
		return nil, err
	}

	var byCity []models.Space
	if err := s.withJoins(s.DB.WithContext(ctx).Model(&models.Space{})).
		Where("city_id IN (?)", s.DB.Model(&models.City{}).Select("id").Where("LOWER(name) LIKE ?", pattern)).
		Find(&byCity).Error; err != nil {
		return nil, err
	}

	var seen []uint
	var merged []models.Space
	for _, space := range append(byName, byCity...) {
		if slices.Contains(seen, space.ID) {
			continue
		}
		seen = append(seen, space.ID)
		merged = append(merged, space)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].ID > merged[j].ID
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	enriched := make([]EnrichedSpace, 0, len(merged))
	for i := range merged {
		enriched = append(enriched, enrich(&merged[i]))
	}
	return enriched, nil
}

// TopRated returns the highest-rated spaces by total rating sum. Spaces
// that vanished mid-query (a cascade in flight) are skipped, not errors.
func (s *ListingService) TopRated(ctx context.Context, limit int) ([]EnrichedSpace, error) {
	if limit <= 0 {
		limit = 3
	}

	var rows []struct {
		SpaceID     uint
		TotalRating float64
	}
	err := s.DB.WithContext(ctx).Model(&models.Rating{}).
		Select("space_id, SUM(rate) AS total_rating").
		Group("space_id").
		Order("total_rating DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var top []EnrichedSpace
	for _, row := range rows {
		enrichedSpace, err := s.GetOne(ctx, row.SpaceID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		top = append(top, *enrichedSpace)
	}
	return top, nil
}

func (s *ListingService) withJoins(q *gorm.DB) *gorm.DB {
	return q.
		Preload("City").
		Preload("Category").
		Preload("Owner").
		Preload("Services").
		Preload("Ratings").
		Preload("Images")
}

func enrich(space *models.Space) EnrichedSpace {
	e := EnrichedSpace{Space: *space}

	for i, service := range space.Services {
		if i == 0 || service.DailyPrice < *e.MinDailyPrice {
			price := service.DailyPrice
			e.MinDailyPrice = &price
		}
	}

	if len(space.Ratings) > 0 {
		var total float64
		for _, rating := range space.Ratings {
			total += rating.Rate
		}
		avg := total / float64(len(space.Ratings))
		e.AverageRating = &avg
		e.RatingCount = len(space.Ratings)
	}

	return e
}

// matchesFolded applies the predicates that depend on derived fields or
// multi-valued joins. A space without services has no minimum price and is
// excluded from any price-bounded filter; same for ratings.
func matchesFolded(e *EnrichedSpace, filter ListingFilter) bool {
	if filter.CategoryID > 0 && e.CategoryID != filter.CategoryID {
		return false
	}
	if filter.AmenityID > 0 && !slices.Contains(e.AmenityIDs(), filter.AmenityID) {
		return false
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		if e.MinDailyPrice == nil {
			return false
		}
		if filter.MinPrice != nil && *e.MinDailyPrice < *filter.MinPrice {
			return false
		}
		if filter.MaxPrice != nil && *e.MinDailyPrice > *filter.MaxPrice {
			return false
		}
	}

	if filter.MinRating != nil || filter.MaxRating != nil {
		if e.AverageRating == nil {
			return false
		}
		if filter.MinRating != nil && *e.AverageRating < *filter.MinRating {
			return false
		}
		if filter.MaxRating != nil && *e.AverageRating > *filter.MaxRating {
			return false
		}
	}

	return true
}

func paginate(list []EnrichedSpace, page, perPage int) []EnrichedSpace {
	if perPage <= 0 {
		return list
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(list) {
		return []EnrichedSpace{}
	}
	end := start + perPage
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
