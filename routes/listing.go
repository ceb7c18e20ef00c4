package routes

import (
	"errors"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/services"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func FilterSpaces(ctx iris.Context) {
	var input FilterSpacesInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	listing := services.NewListingService(storage.DB)
	spaces, err := listing.List(ctx.Request().Context(), services.ListingFilter{
		Status:     input.Status,
		CityID:     input.CityID,
		CategoryID: input.CategoryID,
		AmenityID:  input.AmenityID,
		MinPrice:   input.MinPrice,
		MaxPrice:   input.MaxPrice,
		MinRating:  input.MinRating,
		MaxRating:  input.MaxRating,
		Page:       input.Page,
		PerPage:    input.PerPage,
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(spaces)
}

func GetEnrichedSpace(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	space, err := services.NewListingService(storage.DB).GetOne(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(space)
}

func SearchSpaces(ctx iris.Context) {
	query := ctx.URLParam("query")
	if query == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Missing search query", ctx)
		return
	}

	spaces, err := services.NewListingService(storage.DB).Search(ctx.Request().Context(), query)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(spaces)
}

func GetTopRatedSpaces(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 3)

	spaces, err := services.NewListingService(storage.DB).TopRated(ctx.Request().Context(), limit)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(spaces)
}

type FilterSpacesInput struct {
	Status     string   `json:"status" validate:"omitempty,oneof=Pending Accepted Canceled"`
	CityID     uint     `json:"cityID"`
	CategoryID uint     `json:"categoryID"`
	AmenityID  uint     `json:"amenityID"`
	MinPrice   *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
	MinRating  *float64 `json:"minRating" validate:"omitempty,gte=0,lte=5"`
	MaxRating  *float64 `json:"maxRating" validate:"omitempty,gte=0,lte=5"`
	Page       int      `json:"page" validate:"omitempty,gte=1"`
	PerPage    int      `json:"perPage" validate:"omitempty,gte=1,lte=100"`
}
