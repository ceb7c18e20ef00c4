package routes

import (
	"errors"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/services"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateReservation(ctx iris.Context) {
	var input CreateReservationInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	userID := input.UserID
	if userID == nil {
		if tokenID, ok := ctx.Values().Get("userID").(uint); ok {
			userID = &tokenID
		}
	}

	reservation, err := services.NewCapacityService(storage.DB).Reserve(ctx.Request().Context(), services.ReserveInput{
		Type:      input.Type,
		RoomID:    input.RoomID,
		ServiceID: input.ServiceID,
		UserID:    userID,
		Quantity:  input.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCapacityExceeded):
			utils.CreateError(iris.StatusConflict, "Capacity Exceeded", "Not enough capacity left for this reservation.", ctx)
		case errors.Is(err, models.ErrInvalidTarget):
			utils.CreateNotFound(ctx)
		case errors.Is(err, models.ErrInvalidInput):
			utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	ctx.JSON(reservation)
}

func CancelReservation(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	err := services.NewCapacityService(storage.DB).Release(ctx.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			utils.CreateNotFound(ctx)
		case errors.Is(err, models.ErrInvalidInput):
			utils.CreateError(iris.StatusConflict, "Conflict", err.Error(), ctx)
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	ctx.JSON(iris.Map{"message": "Reservation canceled successfully"})
}

func GetReservationsByUserID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid user ID", ctx)
		return
	}

	var reservations []models.Reservation
	if err := storage.DB.Where("user_id = ?", id).Order("created_at DESC").Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(reservations)
}

func GetReservationsByRoomID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	var reservations []models.Reservation
	if err := storage.DB.Where("room_id = ?", id).Order("created_at DESC").Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(reservations)
}

type CreateReservationInput struct {
	Type      string `json:"type" validate:"required,oneof=Room Desk Daily Monthly Annually"`
	RoomID    uint   `json:"roomID"`
	ServiceID uint   `json:"serviceID"`
	UserID    *uint  `json:"userID"` // defaults to the token's user
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}
