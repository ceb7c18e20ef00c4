package routes

import (
	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateRating(ctx iris.Context) {
	var input CreateRatingInput
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

	var user models.User
	userExists := storage.DB.Find(&user, input.UserID)
	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	rating := models.Rating{
		SpaceID: input.SpaceID,
		UserID:  input.UserID,
		Rate:    input.Rate,
		Message: input.Message,
		// Snapshotted so the listing fold never needs a second join.
		SpaceName: space.Name,
		UserName:  user.FullName,
	}

	if err := storage.DB.Create(&rating).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(rating)
}

func DeleteRating(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid rating ID", ctx)
		return
	}

	res := storage.DB.Delete(&models.Rating{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Rating deleted successfully"})
}

func GetRatingsBySpaceID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	var ratings []models.Rating
	if err := storage.DB.Where("space_id = ?", id).Order("created_at DESC").Find(&ratings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(ratings)
}

func GetRatingsByUserID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid user ID", ctx)
		return
	}

	var ratings []models.Rating
	if err := storage.DB.Where("user_id = ?", id).Order("created_at DESC").Find(&ratings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(ratings)
}

type CreateRatingInput struct {
	SpaceID uint    `json:"spaceID" validate:"required"`
	UserID  uint    `json:"userID" validate:"required"`
	Rate    float64 `json:"rate" validate:"required,gte=1,lte=5"`
	Message string  `json:"message"`
}
