package routes

import (
	"errors"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/services"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func CreateRoom(ctx iris.Context) {
	var input CreateRoomInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var space models.Space
	spaceExists := storage.DB.Find(&space, input.SpaceID)
	if spaceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if spaceExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	room := models.Room{
		SpaceID:     input.SpaceID,
		Description: input.Description,
		Price:       input.Price,
		DeskPrice:   input.DeskPrice,
		DeskNumber:  input.DeskNumber,
		ReserveType: input.ReserveType,
	}

	if err := storage.DB.Create(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// The space's room pool grows with each room.
	storage.DB.Model(&models.Space{}).Where("id = ?", input.SpaceID).
		UpdateColumn("room_number", gorm.Expr("room_number + 1"))

	ctx.JSON(room)
}

func UpdateRoom(ctx iris.Context) {
	var input UpdateRoomInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	roomExists := storage.DB.Find(&room, input.ID)
	if roomExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if roomExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	room.Description = input.Description
	room.DeskNumber = input.DeskNumber
	room.Price = input.Price
	room.DeskPrice = input.DeskPrice

	if err := storage.DB.Model(&room).Updates(room).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	ctx.JSON(room)
}

func DeleteRoom(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	summary, err := services.NewCascadeService(storage.DB).DeleteRoom(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPartialCascade) {
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{"error": "Partial Cascade", "message": "Retry the delete to finish.", "summary": summary})
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Room deleted successfully", "summary": summary})
}

func GetRooms(ctx iris.Context) {
	var rooms []models.Room
	if err := storage.DB.Order("created_at DESC").Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(rooms)
}

func GetRoomsBySpaceID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	var rooms []models.Room
	if err := storage.DB.Where("space_id = ?", id).Order("created_at DESC").Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(rooms)
}

func GetRoom(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	var room models.Room
	roomExists := storage.DB.Preload("Images").Find(&room, id)
	if roomExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if roomExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(room)
}

type CreateRoomInput struct {
	SpaceID     uint    `json:"spaceID" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gte=0.1"`
	DeskPrice   float64 `json:"deskPrice" validate:"required,gte=0.1"`
	DeskNumber  int     `json:"deskNumber" validate:"required,gte=3"`
	ReserveType string  `json:"reserveType" validate:"required,oneof=Room Desk"`
}

type UpdateRoomInput struct {
	ID          uint    `json:"id" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gte=0.1"`
	DeskPrice   float64 `json:"deskPrice" validate:"required,gte=0.1"`
	DeskNumber  int     `json:"deskNumber" validate:"required,gte=3"`
}
