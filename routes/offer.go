package routes

import (
	"errors"
	"time"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/services"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateOffer(ctx iris.Context) {
	var input CreateOfferInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startDate must be formatted as YYYY-MM-DD", ctx)
		return
	}
	endDate, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must be formatted as YYYY-MM-DD", ctx)
		return
	}

	offer, err := services.NewOfferService(storage.DB).Propose(ctx.Request().Context(), services.ProposeOfferInput{
		Target:     services.OfferTarget{Kind: services.TargetKind(input.TargetKind), ID: input.TargetID},
		Percentage: input.Percentage,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrOfferOverlap):
			utils.CreateError(iris.StatusConflict, "Offer Overlap", "An offer already covers part of this date range.", ctx)
		case errors.Is(err, models.ErrInvalidTarget):
			utils.CreateNotFound(ctx)
		case errors.Is(err, models.ErrInvalidInput):
			utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
		case errors.Is(err, models.ErrLockTimeout):
			utils.CreateError(iris.StatusServiceUnavailable, "Busy", "Another offer for this target is being processed, try again.", ctx)
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	ctx.JSON(offer)
}

func DeleteOffer(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid offer ID", ctx)
		return
	}

	err := services.NewOfferService(storage.DB).Delete(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Offer deleted successfully"})
}

func GetOffers(ctx iris.Context) {
	var offers []models.Offer
	if err := storage.DB.Order("start_date ASC").Find(&offers).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(offers)
}

func GetOffersBySpaceID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	var offers []models.Offer
	if err := storage.DB.Where("space_id = ?", id).Order("start_date ASC").Find(&offers).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(offers)
}

func GetOffer(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid offer ID", ctx)
		return
	}

	var offer models.Offer
	offerExists := storage.DB.Preload("Notification").Find(&offer, id)
	if offerExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if offerExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(offer)
}

type CreateOfferInput struct {
	TargetKind string  `json:"targetKind" validate:"required,oneof=space room service"`
	TargetID   uint    `json:"targetID" validate:"required"`
	Percentage float64 `json:"percentage" validate:"required,gt=0,lt=100"`
	StartDate  string  `json:"startDate" validate:"required"`
	EndDate    string  `json:"endDate" validate:"required"`
}
